package handlers

import (
	"errors"
	"log"

	"eventhub/internal/models"
	"eventhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RSVPHandler handles guest invitation endpoints
type RSVPHandler struct {
	rsvpService *services.RSVPService
}

// NewRSVPHandler creates a new RSVP handler
func NewRSVPHandler(rsvpService *services.RSVPService) *RSVPHandler {
	return &RSVPHandler{rsvpService: rsvpService}
}

// Invite invites a guest to an event (host only)
// POST /api/rsvp/invite
func (h *RSVPHandler) Invite(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.InviteGuestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	rsvp, err := h.rsvpService.Invite(c.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyInvited):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Guest already invited",
			})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Guest not found",
			})
		default:
			return eventError(c, err)
		}
	}

	log.Printf("✅ Guest invited: event=%s guest=%s", rsvp.EventID.Hex(), rsvp.GuestID.Hex())
	return c.Status(fiber.StatusCreated).JSON(rsvp)
}

// Respond records the caller's answer to their invite
// POST /api/rsvp/respond
func (h *RSVPHandler) Respond(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.RespondToInviteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	rsvp, err := h.rsvpService.Respond(c.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRSVPStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Status must be accepted or declined",
			})
		case errors.Is(err, services.ErrInviteNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Invite not found",
			})
		default:
			return eventError(c, err)
		}
	}

	return c.JSON(rsvp)
}

// ListByEvent returns an event's invite list (host only)
// GET /api/rsvp/event/:eventId
func (h *RSVPHandler) ListByEvent(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	eventID, err := parseObjectIDParam(c, "eventId")
	if err != nil {
		return err
	}

	rsvps, err := h.rsvpService.ListByEvent(c.Context(), userID, eventID)
	if err != nil {
		return eventError(c, err)
	}
	return c.JSON(rsvps)
}

// ListMine returns the caller's invites with events populated
// GET /api/rsvp/me
func (h *RSVPHandler) ListMine(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	rsvps, err := h.rsvpService.ListByGuest(c.Context(), userID)
	if err != nil {
		log.Printf("❌ Failed to list invites: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list invites",
		})
	}
	return c.JSON(rsvps)
}
