package ws

import (
	"encoding/json"
	"sync"
	"time"

	"asset_bridge/internal/logger"
)

// Hub fans market events out to every connected feed client. Slow clients
// whose send buffer fills up are dropped rather than blocking the broadcast.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	logger.Debug("feed client connected", "clients", n)
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// ClientCount returns the number of connected feed clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish broadcasts a market event to all connected clients.
func (h *Hub) Publish(eventType string, data any) {
	event := Event{
		Type: eventType,
		Data: data,
		Time: time.Now().UTC(),
	}
	raw, err := json.Marshal(event)
	if err != nil {
		logger.Error("failed to marshal feed event", "error", err, "type", eventType)
		return
	}

	h.mu.Lock()
	for c := range h.clients {
		select {
		case c.send <- raw:
		default:
			// drop the slow client
			delete(h.clients, c)
			close(c.send)
		}
	}
	h.mu.Unlock()
}
