package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"eventhub/internal/models"
	"eventhub/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// insightAnalyzer is the slice of the insight service the handler needs.
// Analyze reports whether the run created the event's report or
// replaced an existing one.
type insightAnalyzer interface {
	Analyze(ctx context.Context, userID, eventID primitive.ObjectID) (*models.InsightReport, bool, error)
	GetReport(ctx context.Context, eventID primitive.ObjectID) (*models.InsightReport, error)
}

// MessageHandler handles the event chat transcript and its analysis
type MessageHandler struct {
	messageService *services.MessageService
	insightService insightAnalyzer
	connManager    *services.ConnectionManager
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService *services.MessageService, insightService insightAnalyzer, connManager *services.ConnectionManager) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		insightService: insightService,
		connManager:    connManager,
	}
}

// Send stores a chat message and fans it out to live WebSocket clients
// POST /api/messages
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	message, err := h.messageService.Send(c.Context(), userID, req)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Event not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.broadcast(message)

	return c.Status(fiber.StatusCreated).JSON(message)
}

// List returns an event's transcript in chronological order
// GET /api/messages/:eventId
func (h *MessageHandler) List(c *fiber.Ctx) error {
	eventID, err := parseObjectIDParam(c, "eventId")
	if err != nil {
		return err
	}

	messages, err := h.messageService.ListByEvent(c.Context(), eventID)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Event not found",
			})
		}
		log.Printf("❌ Failed to load transcript: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load messages",
		})
	}
	return c.JSON(messages)
}

// Analyze runs the insight extraction pipeline over an event's transcript.
// Host only.
// POST /api/messages/analyze/:eventId
func (h *MessageHandler) Analyze(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	eventID, err := parseObjectIDParam(c, "eventId")
	if err != nil {
		return err
	}

	report, created, err := h.insightService.Analyze(c.Context(), userID, eventID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Event not found",
			})
		case errors.Is(err, services.ErrNotEventHost):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Only the event host can analyze messages",
			})
		default:
			log.Printf("❌ Analysis failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to analyze messages",
			})
		}
	}

	// 201 on the first analysis of an event, 200 on a re-analysis
	if created {
		return c.Status(fiber.StatusCreated).JSON(report)
	}
	return c.JSON(report)
}

// GetInsights returns the stored insight report for an event
// GET /api/messages/insights/:eventId
func (h *MessageHandler) GetInsights(c *fiber.Ctx) error {
	eventID, err := parseObjectIDParam(c, "eventId")
	if err != nil {
		return err
	}

	report, err := h.insightService.GetReport(c.Context(), eventID)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Event not found",
			})
		}
		log.Printf("❌ Failed to load insights: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load insights",
		})
	}
	return c.JSON(report)
}

// broadcast pushes a freshly stored message to everyone watching the event
func (h *MessageHandler) broadcast(message *models.Message) {
	if h.connManager == nil {
		return
	}

	frame, err := json.Marshal(fiber.Map{
		"type":    "message",
		"payload": message,
	})
	if err != nil {
		return
	}
	h.connManager.Broadcast(message.EventID.Hex(), frame)

	if m := services.GetMetrics(); m != nil {
		m.RecordWebSocketMessage("message", "outbound")
	}
}
