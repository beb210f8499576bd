package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event represents a real-time notification sent to chat stream subscribers.
// The REST handlers remain the write path; events only mirror what was
// persisted so late subscribers can reconcile via GET /chats/:id/messages.
type Event struct {
	// Type of event: "message", "reaction", "pin", "membership"
	Type string `json:"type"`

	// Chat this event belongs to
	ChatID int64 `json:"chatId"`

	// User who triggered the event
	SenderID int64 `json:"senderId"`

	// Event payload, shape depends on Type
	Payload interface{} `json:"payload,omitempty"`

	// Timestamp when the event was emitted
	Timestamp time.Time `json:"timestamp"`
}

// Hub maintains the set of active clients and broadcasts events to them,
// organized by chat ID.
type Hub struct {
	clients map[int64]map[*Client]bool

	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Event),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[int64]map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and broadcasts.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	chatID := client.chatID
	if _, ok := h.clients[chatID]; !ok {
		h.clients[chatID] = make(map[*Client]bool)
	}
	h.clients[chatID][client] = true

	h.logger.Info().
		Int64("chatID", chatID).
		Int64("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	chatID := client.chatID
	if _, ok := h.clients[chatID]; ok {
		if _, ok := h.clients[chatID][client]; ok {
			delete(h.clients[chatID], client)
			close(client.send)

			if len(h.clients[chatID]) == 0 {
				delete(h.clients, chatID)
			}

			h.logger.Info().
				Int64("chatID", chatID).
				Int64("userID", client.userID).
				Msg("Client unregistered")
		}
	}
}

func (h *Hub) broadcastEvent(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("chatID", event.ChatID).
			Msg("Failed to marshal event for broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[event.ChatID]
	if !ok {
		h.logger.Debug().
			Int64("chatID", event.ChatID).
			Msg("No subscribers for broadcast")
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
		default:
			// Client's send buffer is full, they might be slow or
			// disconnected. Drop them inline; the unregister channel is
			// serviced by this goroutine and would block on itself.
			delete(clients, client)
			close(client.send)
			h.logger.Info().
				Int64("chatID", event.ChatID).
				Int64("userID", client.userID).
				Msg("Dropped slow client")
		}
	}
	if len(clients) == 0 {
		delete(h.clients, event.ChatID)
	}

	h.logger.Debug().
		Int64("chatID", event.ChatID).
		Int("clientCount", len(clients)).
		Str("type", event.Type).
		Msg("Event broadcasted to chat")
}

// BroadcastToChat sends an event to all connected clients subscribed to a chat.
// Safe to call from any goroutine.
func (h *Hub) BroadcastToChat(event *Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	h.broadcast <- event
}

// GetClientsCount returns the number of connected clients for a chat
func (h *Hub) GetClientsCount(chatID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.clients[chatID]; ok {
		return len(clients)
	}
	return 0
}
