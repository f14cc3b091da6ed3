package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/skip2/go-qrcode"

	"trustimonials/internal/formflow"
	"trustimonials/internal/store"
	"trustimonials/internal/templates"
	"trustimonials/models"
	"trustimonials/utils"
)

const (
	defaultQRSize = 256
	minQRSize     = 128
	maxQRSize     = 1024
)

type CreateFormRequest struct {
	Name string `json:"name" validate:"required,max=120"`
	// Config defaults to the built-in template when omitted.
	Config *formflow.Config `json:"config"`
}

type UpdateFormRequest struct {
	Name   *string          `json:"name" validate:"omitempty,min=1,max=120"`
	Config *formflow.Config `json:"config"`
}

// FormResponse is a form plus the link customers open to fill it in.
type FormResponse struct {
	models.Form
	ShareURL string `json:"share_url"`
}

func (h *ApplicationHandler) formResponse(f models.Form) FormResponse {
	return FormResponse{Form: f, ShareURL: h.shareURL(f)}
}

func (h *ApplicationHandler) shareURL(f models.Form) string {
	return h.PublicURL("/f/" + f.ID.String())
}

// ListForms godoc
// @Summary List forms
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Success 200 {array} FormResponse
// @Router /forms [get]
func (h *ApplicationHandler) ListForms(c *fiber.Ctx) error {
	scope, err := h.scope(c)
	if err != nil {
		return h.fail(c, err, "Project", "list forms")
	}
	forms, err := h.Store.ListForms(c.UserContext(), scope)
	if err != nil {
		return h.fail(c, err, "Forms", "list forms")
	}
	out := make([]FormResponse, 0, len(forms))
	for _, f := range forms {
		out = append(out, h.formResponse(f))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, out)
}

// CreateForm godoc
// @Summary Create a form
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param form body CreateFormRequest true "Form to create"
// @Success 201 {object} FormResponse
// @Failure 400 {object} ErrorResponse
// @Router /forms [post]
func (h *ApplicationHandler) CreateForm(c *fiber.Ctx) error {
	var req CreateFormRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	scope, err := h.scope(c)
	if err != nil {
		return h.fail(c, err, "Project", "create form")
	}

	var cfg formflow.Config
	if req.Config != nil {
		cfg = *req.Config
	} else if cfg, err = templates.DefaultForm(); err != nil {
		return h.fail(c, err, "Form template", "create form")
	}
	if err := cfg.Validate(); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	created, err := h.Store.CreateForm(c.UserContext(), models.Form{
		UserID:    scope.UserID,
		ProjectID: scope.ProjectID,
		Name:      req.Name,
		Config:    cfg,
	})
	if err != nil {
		return h.fail(c, err, "Form", "create form")
	}
	return utils.RespondWithJSON(c, fiber.StatusCreated, h.formResponse(*created))
}

// GetForm godoc
// @Summary Get a form
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Success 200 {object} FormResponse
// @Failure 404 {object} ErrorResponse
// @Router /forms/{id} [get]
func (h *ApplicationHandler) GetForm(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid form ID")
	}
	scope, err := h.scope(c)
	if err != nil {
		return h.fail(c, err, "Project", "load form")
	}
	f, err := h.Store.GetForm(c.UserContext(), scope, id)
	if err != nil {
		return h.fail(c, err, "Form", "load form")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, h.formResponse(*f))
}

// UpdateForm godoc
// @Summary Rename a form or replace its config
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Param form body UpdateFormRequest true "Changes"
// @Success 200 {object} FormResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /forms/{id} [put]
func (h *ApplicationHandler) UpdateForm(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid form ID")
	}
	var req UpdateFormRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	if req.Name == nil && req.Config == nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Nothing to update")
	}
	if req.Config != nil {
		if err := req.Config.Validate(); err != nil {
			return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
		}
	}
	scope, err := h.scope(c)
	if err != nil {
		return h.fail(c, err, "Project", "update form")
	}
	updated, err := h.Store.UpdateForm(c.UserContext(), scope, id, store.FormUpdate{Name: req.Name, Config: req.Config})
	if err != nil {
		return h.fail(c, err, "Form", "update form")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, h.formResponse(*updated))
}

// DeleteForm godoc
// @Summary Delete a form
// @Description Testimonials collected by the form are kept.
// @Tags forms
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /forms/{id} [delete]
func (h *ApplicationHandler) DeleteForm(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid form ID")
	}
	scope, err := h.scope(c)
	if err != nil {
		return h.fail(c, err, "Project", "delete form")
	}
	if err := h.Store.DeleteForm(c.UserContext(), scope, id); err != nil {
		return h.fail(c, err, "Form", "delete form")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetFormQRCode godoc
// @Summary QR code of the form's share link
// @Tags forms
// @Produce png
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Param size query int false "Edge length in pixels (128-1024)"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /forms/{id}/qr [get]
func (h *ApplicationHandler) GetFormQRCode(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid form ID")
	}
	size := defaultQRSize
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < minQRSize || n > maxQRSize {
			return utils.RespondWithError(c, fiber.StatusBadRequest, "size must be between 128 and 1024")
		}
		size = n
	}
	scope, err := h.scope(c)
	if err != nil {
		return h.fail(c, err, "Project", "render QR code")
	}
	f, err := h.Store.GetForm(c.UserContext(), scope, id)
	if err != nil {
		return h.fail(c, err, "Form", "render QR code")
	}

	png, err := qrcode.Encode(h.shareURL(*f), qrcode.Medium, size)
	if err != nil {
		return h.fail(c, err, "Form", "render QR code")
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="form-qr.png"`)
	return c.Send(png)
}
