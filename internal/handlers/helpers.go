package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUserID reads the authenticated user's ID from the request context.
// The auth middleware stores it as a hex string in c.Locals.
func currentUserID(c *fiber.Ctx) (primitive.ObjectID, error) {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID")
	}
	return id, nil
}

// parseObjectIDParam parses a path parameter as a MongoDB ObjectID
func parseObjectIDParam(c *fiber.Ctx, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}
