package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"kicksranker/internal/config"
)

type StatusHandler struct {
	Cfg config.Config
}

func (h *StatusHandler) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "Sneaker Investment API - Live",
		"endpoint":    "/trending",
		"strategy":    "Focus on high-ROI collabs + top brands",
		"successRate": "47.9% for collaborations",
		"avgReturn":   "+37.7% for collabs, +20.5% Fear of God, +16.8% Vans",
		"config": fiber.Map{
			"patterns":           len(h.Cfg.Patterns),
			"productsPerPattern": h.Cfg.PerPattern,
			"threshold":          fmt.Sprintf("%g%%+", h.Cfg.Threshold),
			"topN":               h.Cfg.TopN,
			"rankMode":           h.Cfg.RankMode,
		},
	})
}

func Healthz(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) }
