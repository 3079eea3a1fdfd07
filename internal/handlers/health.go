package handlers

import (
	"time"

	"eventhub/internal/database"
	"eventhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	db          *database.MongoDB
	redis       *services.RedisService // optional
	connManager *services.ConnectionManager
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.MongoDB, redis *services.RedisService, connManager *services.ConnectionManager) *HealthHandler {
	return &HealthHandler{
		db:          db,
		redis:       redis,
		connManager: connManager,
	}
}

// Handle responds with server health status
func (h *HealthHandler) Handle(c *fiber.Ctx) error {
	status := "healthy"

	mongoStatus := "ok"
	if err := h.db.Ping(c.Context()); err != nil {
		mongoStatus = "down"
		status = "degraded"
	}

	redisStatus := "disabled"
	if h.redis != nil {
		redisStatus = "ok"
		if err := h.redis.Ping(c.Context()); err != nil {
			redisStatus = "down"
			status = "degraded"
		}
	}

	return c.JSON(fiber.Map{
		"status":      status,
		"mongodb":     mongoStatus,
		"redis":       redisStatus,
		"connections": h.connManager.Count(),
		"timestamp":   time.Now().Format(time.RFC3339),
	})
}
