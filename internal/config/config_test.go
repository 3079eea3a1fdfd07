package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want 5000", cfg.Port)
	}
	if cfg.MongoURI != "mongodb://localhost:27017/eventhub" {
		t.Errorf("MongoURI = %q, want default", cfg.MongoURI)
	}
	if cfg.AccessTokenExpiry != 15*time.Minute {
		t.Errorf("AccessTokenExpiry = %v, want 15m", cfg.AccessTokenExpiry)
	}
	if cfg.InsightRefreshCron != "0 3 * * *" {
		t.Errorf("InsightRefreshCron = %q, want default", cfg.InsightRefreshCron)
	}
	if !cfg.InsightRefreshEnabled {
		t.Error("InsightRefreshEnabled should default to true")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ENVIRONMENT", "Production")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "30m")
	t.Setenv("INSIGHT_REFRESH_ENABLED", "false")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Environment != "production" {
		t.Errorf("Environment = %q, want production (lowercased)", cfg.Environment)
	}
	if cfg.AccessTokenExpiry != 30*time.Minute {
		t.Errorf("AccessTokenExpiry = %v, want 30m", cfg.AccessTokenExpiry)
	}
	if cfg.InsightRefreshEnabled {
		t.Error("InsightRefreshEnabled should be false")
	}
}

func TestLoadIgnoresInvalidDuration(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRY", "soon")

	cfg := Load()
	if cfg.AccessTokenExpiry != 15*time.Minute {
		t.Errorf("AccessTokenExpiry = %v, want default 15m", cfg.AccessTokenExpiry)
	}
}
