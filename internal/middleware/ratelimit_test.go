package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	config := LoadRateLimitConfig()

	if config.GlobalAPIMax <= 0 {
		t.Errorf("GlobalAPIMax = %d, want positive", config.GlobalAPIMax)
	}
	if config.AuthMax <= 0 {
		t.Errorf("AuthMax = %d, want positive", config.AuthMax)
	}
	if config.AuthExpiration != 15*time.Minute {
		t.Errorf("AuthExpiration = %v, want 15m", config.AuthExpiration)
	}
}

func TestLoadRateLimitConfigEnvOverride(t *testing.T) {
	t.Setenv("RATE_LIMIT_GLOBAL_API", "42")
	t.Setenv("RATE_LIMIT_AUTH", "7")

	config := LoadRateLimitConfig()

	if config.GlobalAPIMax != 42 {
		t.Errorf("GlobalAPIMax = %d, want 42", config.GlobalAPIMax)
	}
	if config.AuthMax != 7 {
		t.Errorf("AuthMax = %d, want 7", config.AuthMax)
	}
}

func TestLoadRateLimitConfigIgnoresInvalidOverride(t *testing.T) {
	t.Setenv("RATE_LIMIT_GLOBAL_API", "not-a-number")

	config := LoadRateLimitConfig()
	defaults := DefaultRateLimitConfig()

	if config.GlobalAPIMax != defaults.GlobalAPIMax {
		t.Errorf("GlobalAPIMax = %d, want default %d", config.GlobalAPIMax, defaults.GlobalAPIMax)
	}
}

func TestAuthRateLimiterBlocksAfterLimit(t *testing.T) {
	config := DefaultRateLimitConfig()
	config.AuthMax = 3
	config.AuthExpiration = time.Minute

	app := fiber.New()
	app.Post("/login", AuthRateLimiter(config), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
		if err != nil {
			t.Fatalf("Request %d failed: %v", i, err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Request %d status = %d, want %d", i, resp.StatusCode, http.StatusOK)
		}
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("Status = %d, want %d", resp.StatusCode, http.StatusTooManyRequests)
	}
}
