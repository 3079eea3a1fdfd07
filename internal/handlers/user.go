package handlers

import (
	"log"

	"eventhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user listing endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns all users as name+email summaries, for the invite picker
// GET /api/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List(c.Context())
	if err != nil {
		log.Printf("❌ Failed to list users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list users",
		})
	}
	return c.JSON(users)
}
