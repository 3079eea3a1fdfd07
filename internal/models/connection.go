package models

import (
	"github.com/gofiber/contrib/websocket"
)

// EventConnection represents one WebSocket client attached to an event chat
type EventConnection struct {
	ConnID   string
	EventID  string
	UserID   string
	UserName string

	Conn      *websocket.Conn
	WriteChan chan []byte   // outbound frames, drained by the writer goroutine
	StopChan  chan struct{} // closed when the connection is being torn down
}
