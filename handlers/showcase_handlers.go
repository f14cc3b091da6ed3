package handlers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"trustimonials/internal/store"
	"trustimonials/internal/templates"
	"trustimonials/models"
	"trustimonials/utils"
)

// ShowcaseRequest creates or edits a wall or widget. On update, omitted
// fields keep their value.
type ShowcaseRequest struct {
	Name           *string         `json:"name" validate:"omitempty,min=1,max=120"`
	Theme          *string         `json:"theme"`
	Style          json.RawMessage `json:"style" swaggertype:"object"`
	TestimonialIDs *[]uuid.UUID    `json:"testimonial_ids" validate:"omitempty,max=100"`
}

type PublishRequest struct {
	Published *bool `json:"published"`
}

// trimName trims a provided name in place and reports whether anything is left.
// A nil name is left alone.
func trimName(name *string) bool {
	if name == nil {
		return true
	}
	*name = strings.TrimSpace(*name)
	return *name != ""
}

func showcaseLabel(kind models.ShowcaseKind) string {
	return strings.ToUpper(string(kind[:1])) + string(kind[1:])
}

// ListShowcases godoc
// @Summary List walls or widgets
// @Tags showcases
// @Produce json
// @Security BearerAuth
// @Param kind path string true "walls or widgets"
// @Success 200 {array} models.Showcase
// @Router /{kind} [get]
func (h *ApplicationHandler) ListShowcases(kind models.ShowcaseKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scope, err := h.scope(c)
		if err != nil {
			return h.fail(c, err, "Project", "list "+kind.Table())
		}
		items, err := h.Store.ListShowcases(c.UserContext(), kind, scope)
		if err != nil {
			return h.fail(c, err, showcaseLabel(kind), "list "+kind.Table())
		}
		return utils.RespondWithJSON(c, fiber.StatusOK, items)
	}
}

// GetShowcase godoc
// @Summary Get a wall or widget
// @Tags showcases
// @Produce json
// @Security BearerAuth
// @Param kind path string true "walls or widgets"
// @Param id path string true "Showcase ID"
// @Success 200 {object} models.Showcase
// @Failure 404 {object} ErrorResponse
// @Router /{kind}/{id} [get]
func (h *ApplicationHandler) GetShowcase(kind models.ShowcaseKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid "+string(kind)+" ID")
		}
		scope, err := h.scope(c)
		if err != nil {
			return h.fail(c, err, "Project", "load "+string(kind))
		}
		s, err := h.Store.GetShowcase(c.UserContext(), kind, scope, id)
		if err != nil {
			return h.fail(c, err, showcaseLabel(kind), "load "+string(kind))
		}
		return utils.RespondWithJSON(c, fiber.StatusOK, s)
	}
}

// CreateShowcase godoc
// @Summary Create a wall or widget
// @Description The theme defaults to the kind's default preset. Without a style the preset's style is used.
// @Tags showcases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kind path string true "walls or widgets"
// @Param showcase body ShowcaseRequest true "Showcase to create"
// @Success 201 {object} models.Showcase
// @Failure 400 {object} ErrorResponse
// @Router /{kind} [post]
func (h *ApplicationHandler) CreateShowcase(kind models.ShowcaseKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req ShowcaseRequest
		if ok, err := h.bind(c, &req); !ok {
			return err
		}
		if req.Name == nil {
			return utils.RespondWithError(c, fiber.StatusBadRequest, "name is required")
		}
		if !trimName(req.Name) {
			return utils.RespondWithError(c, fiber.StatusBadRequest, "name must not be blank")
		}
		scope, err := h.scope(c)
		if err != nil {
			return h.fail(c, err, "Project", "create "+string(kind))
		}

		cfg, msg, err := showcaseConfig(kind, nil, req)
		if err != nil {
			return h.fail(c, err, "Theme", "create "+string(kind))
		}
		if msg != "" {
			return utils.RespondWithError(c, fiber.StatusBadRequest, msg)
		}

		var ids []uuid.UUID
		if req.TestimonialIDs != nil {
			if ids, msg, err = h.selection(c, scope, *req.TestimonialIDs); err != nil {
				return h.fail(c, err, "Testimonials", "create "+string(kind))
			} else if msg != "" {
				return utils.RespondWithError(c, fiber.StatusBadRequest, msg)
			}
		}

		created, err := h.Store.CreateShowcase(c.UserContext(), kind, models.Showcase{
			UserID:         scope.UserID,
			ProjectID:      scope.ProjectID,
			Name:           *req.Name,
			Config:         *cfg,
			TestimonialIDs: ids,
		})
		if err != nil {
			return h.fail(c, err, showcaseLabel(kind), "create "+string(kind))
		}
		return utils.RespondWithJSON(c, fiber.StatusCreated, created)
	}
}

// UpdateShowcase godoc
// @Summary Edit a wall or widget
// @Tags showcases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kind path string true "walls or widgets"
// @Param id path string true "Showcase ID"
// @Param showcase body ShowcaseRequest true "Changes"
// @Success 200 {object} models.Showcase
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /{kind}/{id} [put]
func (h *ApplicationHandler) UpdateShowcase(kind models.ShowcaseKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid "+string(kind)+" ID")
		}
		var req ShowcaseRequest
		if ok, err := h.bind(c, &req); !ok {
			return err
		}
		if !trimName(req.Name) {
			return utils.RespondWithError(c, fiber.StatusBadRequest, "name must not be blank")
		}
		scope, err := h.scope(c)
		if err != nil {
			return h.fail(c, err, "Project", "update "+string(kind))
		}
		ctx := c.UserContext()
		current, err := h.Store.GetShowcase(ctx, kind, scope, id)
		if err != nil {
			return h.fail(c, err, showcaseLabel(kind), "update "+string(kind))
		}

		update := store.ShowcaseUpdate{}
		update.Name = req.Name
		if req.Theme != nil || len(req.Style) > 0 {
			cfg, msg, err := showcaseConfig(kind, &current.Config, req)
			if err != nil {
				return h.fail(c, err, "Theme", "update "+string(kind))
			}
			if msg != "" {
				return utils.RespondWithError(c, fiber.StatusBadRequest, msg)
			}
			update.Config = cfg
		}
		if req.TestimonialIDs != nil {
			ids, msg, err := h.selection(c, scope, *req.TestimonialIDs)
			if err != nil {
				return h.fail(c, err, "Testimonials", "update "+string(kind))
			}
			if msg != "" {
				return utils.RespondWithError(c, fiber.StatusBadRequest, msg)
			}
			update.TestimonialIDs = &ids
		}

		updated, err := h.Store.UpdateShowcase(ctx, kind, scope, id, update)
		if err != nil {
			return h.fail(c, err, showcaseLabel(kind), "update "+string(kind))
		}
		return utils.RespondWithJSON(c, fiber.StatusOK, updated)
	}
}

// PublishShowcase godoc
// @Summary Publish or unpublish a wall or widget
// @Description An empty body publishes.
// @Tags showcases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kind path string true "walls or widgets"
// @Param id path string true "Showcase ID"
// @Param publish body PublishRequest false "Desired state"
// @Success 200 {object} models.Showcase
// @Failure 404 {object} ErrorResponse
// @Router /{kind}/{id}/publish [post]
func (h *ApplicationHandler) PublishShowcase(kind models.ShowcaseKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid "+string(kind)+" ID")
		}
		published := true
		if len(c.Body()) > 0 {
			var req PublishRequest
			if ok, err := h.bind(c, &req); !ok {
				return err
			}
			if req.Published != nil {
				published = *req.Published
			}
		}
		scope, err := h.scope(c)
		if err != nil {
			return h.fail(c, err, "Project", "publish "+string(kind))
		}
		updated, err := h.Store.UpdateShowcase(c.UserContext(), kind, scope, id, store.ShowcaseUpdate{Published: &published})
		if err != nil {
			return h.fail(c, err, showcaseLabel(kind), "publish "+string(kind))
		}
		return utils.RespondWithJSON(c, fiber.StatusOK, updated)
	}
}

// DeleteShowcase godoc
// @Summary Delete a wall or widget
// @Tags showcases
// @Security BearerAuth
// @Param kind path string true "walls or widgets"
// @Param id path string true "Showcase ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /{kind}/{id} [delete]
func (h *ApplicationHandler) DeleteShowcase(kind models.ShowcaseKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid "+string(kind)+" ID")
		}
		scope, err := h.scope(c)
		if err != nil {
			return h.fail(c, err, "Project", "delete "+string(kind))
		}
		if err := h.Store.DeleteShowcase(c.UserContext(), kind, scope, id); err != nil {
			return h.fail(c, err, showcaseLabel(kind), "delete "+string(kind))
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GetPublicShowcase godoc
// @Summary Public view of a published wall or widget
// @Description Only public testimonials are included, in selection order.
// @Tags public
// @Produce json
// @Param kind path string true "walls or widgets"
// @Param id path string true "Showcase ID"
// @Success 200 {object} models.PublicShowcase
// @Failure 404 {object} ErrorResponse
// @Router /public/{kind}/{id} [get]
func (h *ApplicationHandler) GetPublicShowcase(kind models.ShowcaseKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return utils.RespondWithError(c, fiber.StatusNotFound, showcaseLabel(kind)+" not found")
		}
		ctx := c.UserContext()
		s, err := h.Store.GetPublishedShowcase(ctx, kind, id)
		if err != nil {
			return h.fail(c, err, showcaseLabel(kind), "load "+string(kind))
		}
		rows, err := h.Store.GetTestimonialsByIDs(ctx, s.ProjectID, s.TestimonialIDs)
		if err != nil {
			return h.fail(c, err, showcaseLabel(kind), "load "+string(kind))
		}

		c.Set(fiber.HeaderCacheControl, "public, max-age=60")
		return utils.RespondWithJSON(c, fiber.StatusOK, models.PublicShowcase{
			ID:           s.ID,
			Kind:         kind,
			Name:         s.Name,
			Config:       s.Config,
			Testimonials: publicInOrder(s.TestimonialIDs, rows),
		})
	}
}

// publicInOrder returns the public rows in the order of ids. The store may
// return rows in any order.
func publicInOrder(ids []uuid.UUID, rows []models.Testimonial) []models.TestimonialView {
	byID := make(map[uuid.UUID]models.Testimonial, len(rows))
	for _, t := range rows {
		byID[t.ID] = t
	}
	views := make([]models.TestimonialView, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok && t.Status == models.StatusPublic {
			views = append(views, models.ToView(t))
		}
	}
	return views
}

// showcaseConfig resolves the theme and style of a request against base (nil
// on create). A non-empty msg is a client error.
func showcaseConfig(kind models.ShowcaseKind, base *models.ShowcaseConfig, req ShowcaseRequest) (*models.ShowcaseConfig, string, error) {
	var cfg models.ShowcaseConfig
	switch {
	case req.Theme != nil:
		if !templates.ValidTheme(kind, *req.Theme) {
			return nil, fmt.Sprintf("Unknown %s theme %q", kind, *req.Theme), nil
		}
		preset, err := templates.ShowcaseConfigFor(kind, *req.Theme)
		if err != nil {
			return nil, "", err
		}
		cfg = preset
	case base != nil:
		cfg = *base
	default:
		preset, err := templates.DefaultShowcaseConfig(kind)
		if err != nil {
			return nil, "", err
		}
		cfg = preset
	}

	if len(req.Style) > 0 && string(req.Style) != "null" {
		var style map[string]interface{}
		if err := json.Unmarshal(req.Style, &style); err != nil {
			return nil, "style must be a JSON object", nil
		}
		cfg.Style = append(json.RawMessage(nil), req.Style...)
	}
	return &cfg, "", nil
}

// selection checks that every id names a testimonial of the caller's project
// and returns them deduplicated in the given order.
func (h *ApplicationHandler) selection(c *fiber.Ctx, scope store.Scope, ids []uuid.UUID) ([]uuid.UUID, string, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return ids, "", nil
	}
	rows, err := h.Store.GetTestimonialsByIDs(c.UserContext(), scope.ProjectID, ids)
	if err != nil {
		return nil, "", err
	}
	if len(rows) != len(ids) {
		return nil, "testimonial_ids contains unknown testimonials", nil
	}
	return ids, "", nil
}
