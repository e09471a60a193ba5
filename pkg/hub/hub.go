// Package hub provides a thread-safe websocket broadcast hub using the
// channel-based fan-out pattern: one goroutine owns the client set, all
// mutation goes through channels.
package hub

import (
	"encoding/json"
	"sync"

	"voicedesk/internal/log"
)

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	// Name for logging
	name string

	// Registered clients
	clients map[*Client]bool

	// Inbound messages to broadcast
	broadcast chan []byte

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Last sticky message, replayed to newly connected clients so a
	// fresh dashboard shows current status without waiting for the
	// next change.
	mu     sync.RWMutex
	sticky []byte
}

// New creates a new Hub
func New(name string) *Hub {
	return &Hub{
		name:       name,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop. Call it in a goroutine; it exits when
// done is closed.
func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Debug("dashboard client connected", "hub", h.name, "total", len(h.clients))
			if replay := h.Sticky(); replay != nil {
				select {
				case client.send <- replay:
				default:
				}
			}

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			log.Debug("dashboard client disconnected", "hub", h.name, "remaining", len(h.clients))

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client's buffer is full; drop the slow client
					// rather than stall the broadcast.
					close(client.send)
					delete(h.clients, client)
					log.Warn("dropped slow dashboard client", "hub", h.name)
				}
			}

		case <-done:
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		}
	}
}

// Broadcast sends raw bytes to all connected clients.
func (h *Hub) Broadcast(data []byte) {
	select {
	case h.broadcast <- data:
	default:
		log.Warn("broadcast channel full, dropping message", "hub", h.name)
	}
}

// BroadcastJSON encodes and broadcasts a JSON message.
func (h *Hub) BroadcastJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Broadcast(data)
	return nil
}

// BroadcastSticky broadcasts and remembers the message; new clients get
// it on connect.
func (h *Hub) BroadcastSticky(data []byte) {
	h.mu.Lock()
	h.sticky = data
	h.mu.Unlock()
	h.Broadcast(data)
}

// Sticky returns the last sticky message, or nil.
func (h *Hub) Sticky() []byte {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sticky
}
