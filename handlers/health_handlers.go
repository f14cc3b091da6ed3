package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Message   string `json:"message"`
	Processor string `json:"processor,omitempty" example:"serving"`
}

// Health godoc
// @Summary Liveness check
// @Description Always 200 while the API is up. The processor field reports the media processor when one is configured.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *ApplicationHandler) Health(c *fiber.Ctx) error {
	resp := HealthResponse{Status: "ok", Message: "API is healthy"}
	if h.Processor != nil {
		status, err := h.Processor.Status(c.UserContext())
		if err != nil {
			h.Logger.WithError(err).Warn("Processor health check failed")
		}
		resp.Processor = status
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}
