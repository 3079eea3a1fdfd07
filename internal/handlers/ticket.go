package handlers

import (
	"errors"
	"log"

	"eventhub/internal/models"
	"eventhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// TicketHandler handles ticket and booking endpoints
type TicketHandler struct {
	ticketService *services.TicketService
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService *services.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// Create adds a ticket class to an event (host only)
// POST /api/tickets
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ticket, err := h.ticketService.Create(c.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound), errors.Is(err, services.ErrNotEventHost):
			return eventError(c, err)
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(ticket)
}

// Book reserves one seat on a ticket for the caller
// POST /api/tickets/book
func (h *TicketHandler) Book(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.BookTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	booking, err := h.ticketService.Book(c.Context(), userID, req.TicketID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTicketNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Ticket not found",
			})
		case errors.Is(err, services.ErrTicketSoldOut):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "No seats available",
			})
		case errors.Is(err, services.ErrAlreadyBooked):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Ticket already booked",
			})
		default:
			log.Printf("❌ Booking failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to book ticket",
			})
		}
	}

	return c.JSON(booking)
}

// ListByEvent returns all ticket classes for an event
// GET /api/tickets/event/:eventId
func (h *TicketHandler) ListByEvent(c *fiber.Ctx) error {
	eventID, err := parseObjectIDParam(c, "eventId")
	if err != nil {
		return err
	}

	tickets, err := h.ticketService.ListByEvent(c.Context(), eventID)
	if err != nil {
		log.Printf("❌ Failed to list tickets: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list tickets",
		})
	}
	return c.JSON(tickets)
}
