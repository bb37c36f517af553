package middleware_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/city-fighting/internal/delivery/http/middleware"
)

func TestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	logger := zap.New(core)

	app := fiber.New()
	app.Use(middleware.Recovery(logger))
	app.Use(middleware.Logger(logger))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNotFound) })
	app.Get("/panic", func(c *fiber.Ctx) error { panic("boom") })

	t.Run("generates request id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Len(t, resp.Header.Get(middleware.RequestIDHeader), 36)
	})

	t.Run("keeps client request id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ok", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-42")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "req-42", resp.Header.Get(middleware.RequestIDHeader))
	})

	t.Run("client errors logged as warnings", func(t *testing.T) {
		_, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
		require.NoError(t, err)

		entries := logs.FilterField(zap.String("path", "/missing")).All()
		require.Len(t, entries, 1)
		assert.Equal(t, zap.WarnLevel, entries[0].Level)
		assert.Equal(t, int64(404), entries[0].ContextMap()["status"])
	})

	t.Run("panic recovered with request id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/panic", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-panic")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)

		entries := logs.FilterMessage("Panic recovered").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "req-panic", entries[0].ContextMap()["request_id"])
		assert.Equal(t, "boom", entries[0].ContextMap()["panic"])
	})
}
