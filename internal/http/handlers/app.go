package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"kicksranker/internal/log"
)

// ErrorHandler answers every escaping error with {"error": message}. Only the
// message is exposed, never a stack.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	c.Status(code)
	if code >= fiber.StatusInternalServerError {
		log.Error(c, "server.error", err, nil)
	}
	return c.JSON(fiber.Map{"error": err.Error()})
}

// AllowAnyOrigin sets the permissive CORS header on every response.
func AllowAnyOrigin(c *fiber.Ctx) error {
	c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
	return c.Next()
}

func NewApp(deps *Deps) *fiber.App {
	cfg := deps.Config

	app := fiber.New(fiber.Config{
		AppName:      "kicksranker",
		ErrorHandler: ErrorHandler,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(AllowAnyOrigin)

	// ---------- Routes ----------
	app.Get("/", deps.StatusHandler.Status)
	app.Get("/healthz", Healthz)

	trending := []fiber.Handler{}
	if cfg.RateLimitPerMin > 0 {
		trending = append(trending, limiter.New(limiter.Config{
			Max:        cfg.RateLimitPerMin,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				log.Security(c, "rate.trending.hit", nil)
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
			},
		}))
	}
	trending = append(trending, deps.TrendingHandler.Trending)
	app.Get("/trending", trending...)

	if cfg.Debug {
		app.Get("/test", deps.DiagnosticHandler.Test)
	}

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})
	return app
}
