package handler

import (
	"context"
	"time"

	"github.com/Khushiyant/nibtara/internal/auth/dto"
	"github.com/gofiber/fiber/v2"
)

// Advice encodes the posted text with the advisory encoder.
func (h *AuthHandler) Advice(c *fiber.Ctx) error {
	var input dto.AdviceInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody()
	}

	vec, err := h.embedder.Embed(c.UserContext(), input.Text)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(dto.AdviceResponse{Vector: vec, Dimensions: len(vec)})
}

// HealthCheck is a named dependency probe.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Health reports 200 when every probe passes and 503 otherwise.
func Health(checks ...HealthCheck) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		resp := dto.HealthResponse{Status: "ok"}
		status := fiber.StatusOK
		if len(checks) > 0 {
			resp.Checks = make(map[string]string, len(checks))
		}
		for _, hc := range checks {
			if err := hc.Check(ctx); err != nil {
				resp.Checks[hc.Name] = err.Error()
				resp.Status = "unavailable"
				status = fiber.StatusServiceUnavailable
				continue
			}
			resp.Checks[hc.Name] = "ok"
		}
		return c.Status(status).JSON(resp)
	}
}
