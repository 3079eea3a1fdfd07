package handlers

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"eventhub/internal/models"
	"eventhub/internal/services"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/time/rate"
)

// Inbound flood control per connection: 5 messages/second, burst of 10
const (
	inboundRate  = 5
	inboundBurst = 10
)

// wsInbound is a client-to-server chat frame
type wsInbound struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// WebSocketHandler handles live event chat connections
type WebSocketHandler struct {
	connManager    *services.ConnectionManager
	eventService   *services.EventService
	messageService *services.MessageService
	metrics        *services.Metrics
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(connManager *services.ConnectionManager, eventService *services.EventService, messageService *services.MessageService, metrics *services.Metrics) *WebSocketHandler {
	return &WebSocketHandler{
		connManager:    connManager,
		eventService:   eventService,
		messageService: messageService,
		metrics:        metrics,
	}
}

// Handle runs one event chat connection until the client disconnects.
// Route: GET /ws/events/:id (token via query parameter)
func (h *WebSocketHandler) Handle(conn *websocket.Conn) {
	eventHexID := conn.Params("id")
	userID, _ := conn.Locals("user_id").(string)
	userName, _ := conn.Locals("user_name").(string)

	eventID, err := primitive.ObjectIDFromHex(eventHexID)
	if err != nil {
		h.closeWith(conn, "Invalid event ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	exists, err := h.eventService.Exists(ctx, eventID)
	cancel()
	if err != nil || !exists {
		h.closeWith(conn, "Event not found")
		return
	}

	eventConn := &models.EventConnection{
		ConnID:    uuid.NewString(),
		EventID:   eventHexID,
		UserID:    userID,
		UserName:  userName,
		Conn:      conn,
		WriteChan: make(chan []byte, 64),
		StopChan:  make(chan struct{}),
	}

	h.connManager.Add(eventConn)
	if h.metrics != nil {
		h.metrics.RecordWebSocketConnect()
	}
	defer func() {
		h.connManager.Remove(eventConn.ConnID)
		if h.metrics != nil {
			h.metrics.RecordWebSocketDisconnect()
		}
	}()

	go h.writeLoop(eventConn)

	h.readLoop(eventConn)
}

// readLoop consumes inbound frames until the connection drops
func (h *WebSocketHandler) readLoop(eventConn *models.EventConnection) {
	limiter := rate.NewLimiter(rate.Limit(inboundRate), inboundBurst)

	for {
		_, raw, err := eventConn.Conn.ReadMessage()
		if err != nil {
			return
		}

		if !limiter.Allow() {
			log.Printf("⚠️  Flood limit hit: conn=%s user=%s", eventConn.ConnID, eventConn.UserID)
			continue
		}

		var frame wsInbound
		if err := json.Unmarshal(raw, &frame); err != nil || frame.Type != "message" {
			continue
		}

		if h.metrics != nil {
			h.metrics.RecordWebSocketMessage("message", "inbound")
		}

		h.storeAndBroadcast(eventConn, frame.Message)
	}
}

// storeAndBroadcast persists an inbound chat message and fans it out
func (h *WebSocketHandler) storeAndBroadcast(eventConn *models.EventConnection, text string) {
	senderID, err := primitive.ObjectIDFromHex(eventConn.UserID)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	message, err := h.messageService.Send(ctx, senderID, models.SendMessageRequest{
		EventID: eventConn.EventID,
		Message: text,
	})
	if err != nil {
		log.Printf("⚠️  Failed to store chat message: %v", err)
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"type":    "message",
		"payload": message,
		"sender":  eventConn.UserName,
	})
	if err != nil {
		return
	}

	h.connManager.Broadcast(eventConn.EventID, payload)
	if h.metrics != nil {
		h.metrics.RecordWebSocketMessage("message", "outbound")
	}
}

// writeLoop drains the outbound channel onto the socket
func (h *WebSocketHandler) writeLoop(eventConn *models.EventConnection) {
	for {
		select {
		case payload, ok := <-eventConn.WriteChan:
			if !ok {
				return
			}
			if err := eventConn.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-eventConn.StopChan:
			return
		}
	}
}

func (h *WebSocketHandler) closeWith(conn *websocket.Conn, reason string) {
	deadline := time.Now().Add(time.Second)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason), deadline)
	_ = conn.Close()
}
