package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// A handler built without a JWT secret must refuse token-issuing
// endpoints instead of panicking on the nil auth backend.
func TestAuthEndpointsWithoutJWTSecretReturn503(t *testing.T) {
	h := NewLocalAuthHandler(nil, nil)

	app := fiber.New()
	app.Post("/api/auth/register", h.Register)
	app.Post("/api/auth/login", h.Login)
	app.Post("/api/auth/refresh", h.RefreshToken)

	for _, path := range []string{"/api/auth/register", "/api/auth/login", "/api/auth/refresh"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"email":"ana@example.com","password":"secret123"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: request failed: %v", path, err)
		}
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("%s: status = %d, want %d", path, resp.StatusCode, http.StatusServiceUnavailable)
		}

		body, _ := io.ReadAll(resp.Body)
		if !strings.Contains(string(body), "Authentication service unavailable") {
			t.Errorf("%s: unexpected body: %s", path, body)
		}
	}
}
