package handlers

import (
	"errors"
	"log"

	"eventhub/internal/models"
	"eventhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// EventHandler handles event CRUD endpoints
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// Create creates a new event hosted by the caller
// POST /api/events
func (h *EventHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	event, err := h.eventService.Create(c.Context(), userID, req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	log.Printf("✅ Event created: %s (%s)", event.Title, event.ID.Hex())
	return c.Status(fiber.StatusCreated).JSON(event)
}

// List returns all events with hosts populated
// GET /api/events
func (h *EventHandler) List(c *fiber.Ctx) error {
	events, err := h.eventService.List(c.Context())
	if err != nil {
		log.Printf("❌ Failed to list events: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list events",
		})
	}
	return c.JSON(events)
}

// ListMine returns events hosted by the caller
// GET /api/events/mine
func (h *EventHandler) ListMine(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	events, err := h.eventService.ListByHost(c.Context(), userID)
	if err != nil {
		log.Printf("❌ Failed to list events: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list events",
		})
	}
	return c.JSON(events)
}

// Get returns a single event with its host populated
// GET /api/events/:id
func (h *EventHandler) Get(c *fiber.Ctx) error {
	eventID, err := parseObjectIDParam(c, "id")
	if err != nil {
		return err
	}

	event, err := h.eventService.GetWithHost(c.Context(), eventID)
	if err != nil {
		return eventError(c, err)
	}
	return c.JSON(event)
}

// Update applies a partial update to an event (host only)
// PUT /api/events/:id
func (h *EventHandler) Update(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	eventID, err := parseObjectIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	event, err := h.eventService.Update(c.Context(), eventID, userID, req)
	if err != nil {
		return eventError(c, err)
	}
	return c.JSON(event)
}

// Delete removes an event (host only)
// DELETE /api/events/:id
func (h *EventHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	eventID, err := parseObjectIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.eventService.Delete(c.Context(), eventID, userID); err != nil {
		return eventError(c, err)
	}

	log.Printf("✅ Event deleted: %s", eventID.Hex())
	return c.JSON(fiber.Map{
		"message": "Event deleted successfully",
	})
}

// eventError maps event service errors to HTTP responses
func eventError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrEventNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Event not found",
		})
	case errors.Is(err, services.ErrNotEventHost):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the event host may perform this action",
		})
	default:
		log.Printf("❌ Event operation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
}
