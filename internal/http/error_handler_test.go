package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"kicksranker/internal/http/handlers"
)

// escaping errors become {"error": message} with no stack attached
func TestErrorHandlerJSON(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())
	app.Use(recover.New())
	app.Use(handlers.AllowAnyOrigin)

	app.Get("/err", func(c *fiber.Ctx) error {
		return errors.New("trending: no patterns configured")
	})
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	for _, path := range []string{"/err", "/panic"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatalf("test request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusInternalServerError {
			t.Fatalf("%s: expected 500, got %d", path, resp.StatusCode)
		}
		if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
			t.Fatalf("%s: CORS header missing on error", path)
		}
		raw, _ := io.ReadAll(resp.Body)
		var body map[string]any
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("%s: body is not JSON: %s", path, string(raw))
		}
		if _, ok := body["error"].(string); !ok {
			t.Fatalf("%s: missing error field: %s", path, string(raw))
		}
		if _, ok := body["stack"]; ok || strings.Contains(string(raw), "goroutine") {
			t.Fatalf("%s: stack leaked: %s", path, string(raw))
		}
	}
}

// server.error lines carry the status that is sent
func TestErrorHandlerLogsStatus(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Get("/err", func(c *fiber.Ctx) error {
		return errors.New("summary failed")
	})

	entries := captureLogs(t, func() {
		resp, err := app.Test(httptest.NewRequest("GET", "/err", nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != fiber.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", resp.StatusCode)
		}
	})

	found := false
	for _, e := range entries {
		if e.Action == "server.error" {
			found = true
			if e.Status != fiber.StatusInternalServerError || e.Err != "summary failed" {
				t.Fatalf("bad server.error entry: %+v", e)
			}
		}
	}
	if !found {
		t.Fatalf("no server.error entry in %+v", entries)
	}
}

func TestErrorHandlerKeepsFiberCodes(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/teapot", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusTeapot {
		t.Fatalf("expected 418, got %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), "short and stout") {
		t.Fatalf("message missing: %s", string(raw))
	}
}
