package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"kicksranker/internal/log"
	"kicksranker/internal/services"
	"kicksranker/internal/validate"
)

const defaultDiagnosticKeyword = "Travis Scott"

type DiagnosticHandler struct {
	Svc *services.TrendingService
}

// Test fetches a single keyword without any filtering and reports provider
// errors as-is. Only mounted in debug mode.
func (h *DiagnosticHandler) Test(c *fiber.Ctx) error {
	keyword := defaultDiagnosticKeyword
	if raw := c.Query("keyword"); raw != "" {
		k, ok := validate.Keyword(raw)
		if !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "keyword", "value": raw})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enter a valid keyword (letters/numbers only)"})
		}
		keyword = k
	}
	limit := validate.Limit(c.Query("count"), 5, 20)

	result := h.Svc.Diagnose(context.Background(), keyword, limit)
	return c.JSON(fiber.Map{
		"test":      keyword,
		"result":    result,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
