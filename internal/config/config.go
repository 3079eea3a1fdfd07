package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Port        string
	Environment string
	MongoURI    string
	RedisURL    string

	// Auth configuration
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration

	// CORS configuration (comma-separated origins)
	AllowedOrigins string

	// Insight refresh job (cron expression, UTC)
	InsightRefreshCron    string
	InsightRefreshEnabled bool
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "5000"),
		Environment: strings.ToLower(getEnv("ENVIRONMENT", "development")),
		MongoURI:    getEnv("MONGODB_URI", "mongodb://localhost:27017/eventhub"),
		RedisURL:    getEnv("REDIS_URL", ""),

		JWTSecret:          getEnv("JWT_SECRET", ""),
		AccessTokenExpiry:  getDurationEnv("ACCESS_TOKEN_EXPIRY", 15*time.Minute),
		RefreshTokenExpiry: getDurationEnv("REFRESH_TOKEN_EXPIRY", 7*24*time.Hour),

		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"),

		InsightRefreshCron:    getEnv("INSIGHT_REFRESH_CRON", "0 3 * * *"),
		InsightRefreshEnabled: getBoolEnv("INSIGHT_REFRESH_ENABLED", true),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
