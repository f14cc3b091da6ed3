package handlers

import (
	"github.com/gofiber/fiber/v2"

	"trustimonials/middleware"
	"trustimonials/utils"
)

// GetCurrentProject godoc
// @Summary Get the caller's project
// @Description Returns the project owned by the authenticated user, creating it on first use.
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Project
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /projects/current [get]
func (h *ApplicationHandler) GetCurrentProject(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return h.fail(c, errUnauthenticated, "Project", "load project")
	}
	project, err := h.ensureProject(c, userID)
	if err != nil {
		return h.fail(c, err, "Project", "load project")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, project)
}
