package ws

import (
	"encoding/json"
	"sync"
	"time"

	"chat_economy/internal/logger"
)

// Event is one economy event pushed to connected observers.
type Event struct {
	Type    string    `json:"type"`
	Payload any       `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

// Hub fans economy events out to every connected client. Slow clients are
// dropped rather than allowed to back-pressure the economy path.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	logger.Debug("ws: client connected", "clients", h.ClientCount())
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// ClientCount returns the number of connected observers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish implements service.EventPublisher.
func (h *Hub) Publish(event string, payload any) {
	msg, err := json.Marshal(Event{Type: event, Payload: payload, At: time.Now().UTC()})
	if err != nil {
		logger.Error("ws: failed to marshal event", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	var stale []*Client
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		logger.Warn("ws: dropping slow client")
		h.unregister(c)
	}
}
