package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventhub/pkg/auth"

	"github.com/gofiber/fiber/v2"
)

func newAuthTestApp(t *testing.T) (*fiber.App, *auth.LocalJWTAuth) {
	t.Helper()

	jwtAuth, err := auth.NewLocalJWTAuth("test-secret", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("Failed to create auth: %v", err)
	}

	app := fiber.New()
	app.Get("/protected", LocalAuthMiddleware(jwtAuth), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":   c.Locals("user_id"),
			"user_role": c.Locals("user_role"),
		})
	})

	return app, jwtAuth
}

func TestLocalAuthMiddlewareWithHeader(t *testing.T) {
	app, jwtAuth := newAuthTestApp(t)

	token, _, err := jwtAuth.GenerateTokens("user-1", "Ana", "ana@example.com", "host")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestLocalAuthMiddlewareWithQueryToken(t *testing.T) {
	app, jwtAuth := newAuthTestApp(t)

	token, _, err := jwtAuth.GenerateTokens("user-1", "Ana", "ana@example.com", "host")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestLocalAuthMiddlewareRejectsMissingToken(t *testing.T) {
	app, _ := newAuthTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestLocalAuthMiddlewareRejectsBadToken(t *testing.T) {
	app, _ := newAuthTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestOptionalAuthFallsBackToAnonymous(t *testing.T) {
	jwtAuth, err := auth.NewLocalJWTAuth("test-secret", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("Failed to create auth: %v", err)
	}

	app := fiber.New()
	app.Get("/open", OptionalLocalAuthMiddleware(jwtAuth), func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		return c.SendString(userID)
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body := make([]byte, 32)
	n, _ := resp.Body.Read(body)
	if got := string(body[:n]); got != "anonymous" {
		t.Errorf("user_id = %q, want anonymous", got)
	}
}
