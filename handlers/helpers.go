package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"trustimonials/internal/store"
	"trustimonials/middleware"
	"trustimonials/models"
	"trustimonials/utils"
)

const defaultProjectName = "My Project"

var errUnauthenticated = errors.New("unauthenticated")

// ErrorResponse documents the error body for swagger.
type ErrorResponse struct {
	Error string `json:"error" example:"Testimonial not found"`
}

// bind parses the JSON body into dst and validates it. When it returns false
// the error response has already been written and err must be returned as is.
func (h *ApplicationHandler) bind(c *fiber.Ctx, dst interface{}) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		h.Logger.WithError(err).Debug("Failed to parse request body")
		return false, utils.RespondWithError(c, fiber.StatusBadRequest, "Cannot parse request body")
	}
	if err := h.validate.Struct(dst); err != nil {
		return false, utils.RespondWithValidationError(c, err)
	}
	return true, nil
}

func parseID(c *fiber.Ctx, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(param))
	return id, err == nil
}

// scope resolves the caller's user and project, creating the project on the
// first authenticated request.
func (h *ApplicationHandler) scope(c *fiber.Ctx) (store.Scope, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return store.Scope{}, errUnauthenticated
	}
	project, err := h.ensureProject(c, userID)
	if err != nil {
		return store.Scope{}, err
	}
	return store.Scope{UserID: userID, ProjectID: project.ID}, nil
}

func (h *ApplicationHandler) ensureProject(c *fiber.Ctx, userID uuid.UUID) (*models.Project, error) {
	ctx := c.UserContext()
	project, err := h.Store.GetProjectByUser(ctx, userID)
	if err == nil {
		return project, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	project, err = h.Store.CreateProject(ctx, models.Project{UserID: userID, Name: defaultProjectName})
	if err != nil {
		// A concurrent first request may have won the unique constraint.
		if existing, getErr := h.Store.GetProjectByUser(ctx, userID); getErr == nil {
			return existing, nil
		}
		return nil, err
	}
	h.Logger.WithFields(logrus.Fields{"user_id": userID, "project_id": project.ID}).Info("Created default project")
	return project, nil
}

// fail maps a store or scope error to a response. what names the entity for
// the 404 message, action describes the failed operation in the log.
func (h *ApplicationHandler) fail(c *fiber.Ctx, err error, what, action string) error {
	switch {
	case errors.Is(err, errUnauthenticated):
		return utils.RespondWithError(c, fiber.StatusUnauthorized, "Authentication required")
	case errors.Is(err, store.ErrNotFound):
		return utils.RespondWithError(c, fiber.StatusNotFound, what+" not found")
	}
	h.Logger.WithFields(logrus.Fields{
		"request_id": c.Locals(middleware.RequestIDKey),
		"action":     action,
	}).WithError(err).Error("Request failed")
	return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not "+action)
}

// dedupeIDs keeps the first occurrence of every id.
func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]bool{}
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[strings.ToLower(t)] {
			continue
		}
		seen[strings.ToLower(t)] = true
		out = append(out, t)
	}
	return out
}
