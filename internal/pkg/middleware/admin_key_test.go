package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", AdminKeyMiddleware(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func requestWithHeaders(t *testing.T, app *fiber.App, headers map[string]string) int {
	t.Helper()

	req := httptest.NewRequest("GET", "/protected", nil)
	for name, value := range headers {
		req.Header.Set(name, value)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestAdminKeyMiddlewareDisabledWithoutKey(t *testing.T) {
	t.Setenv("ADMIN_API_KEY", "")
	app := newProtectedApp()

	status := requestWithHeaders(t, app, map[string]string{"X-API-Key": "anything"})
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}

func TestAdminKeyMiddlewareAcceptsHeaderKey(t *testing.T) {
	t.Setenv("ADMIN_API_KEY", "sekrit")
	app := newProtectedApp()

	assert.Equal(t, fiber.StatusOK, requestWithHeaders(t, app, map[string]string{"X-API-Key": "sekrit"}))
}

func TestAdminKeyMiddlewareAcceptsBearerToken(t *testing.T) {
	t.Setenv("ADMIN_API_KEY", "sekrit")
	app := newProtectedApp()

	assert.Equal(t, fiber.StatusOK, requestWithHeaders(t, app, map[string]string{"Authorization": "Bearer sekrit"}))
}

func TestAdminKeyMiddlewareRejectsWrongKey(t *testing.T) {
	t.Setenv("ADMIN_API_KEY", "sekrit")
	app := newProtectedApp()

	assert.Equal(t, fiber.StatusUnauthorized, requestWithHeaders(t, app, map[string]string{"X-API-Key": "nope"}))
	assert.Equal(t, fiber.StatusUnauthorized, requestWithHeaders(t, app, nil))
}
