package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"kicksranker/internal/domain"
	"kicksranker/internal/log"
	"kicksranker/internal/services"
)

type TrendingHandler struct {
	Svc   *services.TrendingService
	Debug bool
}

// Trending runs a full ranking pass. The run is detached from the client
// connection: a disconnect does not cut the provider loop short.
func (h *TrendingHandler) Trending(c *fiber.Ctx) error {
	res, err := h.Svc.Run(context.Background())
	if err != nil {
		return err
	}

	opps := res.Opportunities
	if opps == nil {
		opps = []domain.Opportunity{}
	}
	body := fiber.Map{
		"success":                 true,
		"runId":                   res.RunID,
		"investmentOpportunities": opps,
		"summary":                 res.Summary,
	}
	if h.Debug {
		errs := res.Errors
		if errs == nil {
			errs = []domain.FetchError{}
		}
		body["errors"] = errs
	}

	log.Info(c, "trending.respond", map[string]any{"run_id": res.RunID, "returned": len(opps)})
	return c.JSON(body)
}
