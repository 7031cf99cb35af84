package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultRetention is how long a finished upload stays subscribable
const DefaultRetention = 5 * time.Minute

// Hub fans upload messages out to the clients subscribed to each upload. The
// last message of every upload is kept so late subscribers start from the
// current state.
type Hub struct {
	// Registered clients organized by upload ID
	clients map[string]map[*Client]bool

	// Uploads that accept subscribers, with their latest encoded message
	uploads map[string][]byte

	// Channel for outbound messages
	broadcast chan *Message

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	// Mutex for concurrent access to clients and uploads
	mu sync.RWMutex

	retention time.Duration

	// Logger for Hub operations
	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		uploads:    make(map[string][]byte),
		broadcast:  make(chan *Message),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		retention:  DefaultRetention,
		logger:     logger,
	}
}

// SetRetention changes how long finished uploads stay subscribable
func (h *Hub) SetRetention(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.retention = d
}

// Run handles registrations and broadcasts until ctx is done
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)

		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

// Track opens an upload for subscriptions
func (h *Hub) Track(uploadID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.uploads[uploadID]; !ok {
		h.uploads[uploadID] = nil
	}
}

// Known reports whether uploadID is tracked
func (h *Hub) Known(uploadID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.uploads[uploadID]
	return ok
}

// Publish queues message for its upload's subscribers. It is a no-op once
// the hub has stopped.
func (h *Hub) Publish(message *Message) {
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}
	select {
	case h.broadcast <- message:
	case <-h.done:
	}
}

// GetClientsCount returns the number of subscribers of an upload
func (h *Hub) GetClientsCount(uploadID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[uploadID])
}

// registerClient registers a new client and replays the latest message
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	uploadID := client.uploadID
	if _, ok := h.clients[uploadID]; !ok {
		h.clients[uploadID] = make(map[*Client]bool)
	}
	h.clients[uploadID][client] = true

	if last := h.uploads[uploadID]; last != nil {
		client.send <- last
	}

	h.logger.Debug().
		Str("uploadID", uploadID).
		Str("addr", client.remoteAddr()).
		Msg("Client registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	uploadID := client.uploadID
	clients, ok := h.clients[uploadID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)

	// If no more clients for this upload, clean up
	if len(clients) == 0 {
		delete(h.clients, uploadID)
	}

	h.logger.Debug().
		Str("uploadID", uploadID).
		Str("addr", client.remoteAddr()).
		Msg("Client unregistered")
}

// broadcastMessage sends a message to every subscriber of its upload
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("uploadID", message.UploadID).
			Msg("Failed to marshal message for broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.uploads[message.UploadID] = data
	for client := range h.clients[message.UploadID] {
		select {
		case client.send <- data:
		default:
			// Slow subscriber
			h.removeLocked(client)
		}
	}

	if message.Terminal() {
		uploadID := message.UploadID
		time.AfterFunc(h.retention, func() { h.forget(uploadID) })
	}
}

// forget drops a finished upload and disconnects its subscribers
func (h *Hub) forget(uploadID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients[uploadID] {
		h.removeLocked(client)
	}
	delete(h.uploads, uploadID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}
