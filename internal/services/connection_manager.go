package services

import (
	"log"
	"sync"

	"eventhub/internal/models"
)

// ConnectionManager manages all active WebSocket connections, grouped by event
type ConnectionManager struct {
	connections map[string]*models.EventConnection
	byEvent     map[string]map[string]*models.EventConnection
	mutex       sync.RWMutex
}

// NewConnectionManager creates a new connection manager
func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*models.EventConnection),
		byEvent:     make(map[string]map[string]*models.EventConnection),
	}
}

// Add adds a new connection
func (cm *ConnectionManager) Add(conn *models.EventConnection) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	cm.connections[conn.ConnID] = conn
	if cm.byEvent[conn.EventID] == nil {
		cm.byEvent[conn.EventID] = make(map[string]*models.EventConnection)
	}
	cm.byEvent[conn.EventID][conn.ConnID] = conn

	log.Printf("✅ Connection added: %s event=%s (Total: %d)", conn.ConnID, conn.EventID, len(cm.connections))
}

// Remove removes a connection and tears down its channels
func (cm *ConnectionManager) Remove(connID string) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	conn, exists := cm.connections[connID]
	if !exists {
		return
	}

	close(conn.WriteChan)
	close(conn.StopChan)
	delete(cm.connections, connID)

	if peers, ok := cm.byEvent[conn.EventID]; ok {
		delete(peers, connID)
		if len(peers) == 0 {
			delete(cm.byEvent, conn.EventID)
		}
	}

	log.Printf("❌ Connection removed: %s (Total: %d)", connID, len(cm.connections))
}

// Get retrieves a connection by ID
func (cm *ConnectionManager) Get(connID string) (*models.EventConnection, bool) {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()
	conn, exists := cm.connections[connID]
	return conn, exists
}

// Count returns the number of active connections
func (cm *ConnectionManager) Count() int {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()
	return len(cm.connections)
}

// CountForEvent returns the number of connections attached to one event
func (cm *ConnectionManager) CountForEvent(eventID string) int {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()
	return len(cm.byEvent[eventID])
}

// Broadcast sends a payload to every connection attached to an event.
// Connections with a full write buffer are skipped rather than blocked on.
func (cm *ConnectionManager) Broadcast(eventID string, payload []byte) {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	for _, conn := range cm.byEvent[eventID] {
		select {
		case conn.WriteChan <- payload:
		default:
			log.Printf("⚠️  Dropping frame for slow connection: %s", conn.ConnID)
		}
	}
}
