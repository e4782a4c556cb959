package websocket

import (
	"errors"

	"github.com/rs/zerolog/log"
)

// Hub maintains the set of active clients and broadcasts the activity feed
// to them. The feed is a single global stream; there are no per-topic
// subscriptions.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Messages queued for global broadcast.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan []byte, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Feed client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Info().Int("total_clients", len(h.clients)).Msg("Feed client disconnected")
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// Publish encodes a feed message and queues it for broadcast. Messages are
// dropped rather than blocking the caller when the queue is full.
func (h *Hub) Publish(action string, payload interface{}) error {
	data, err := Encode(action, payload)
	if err != nil {
		return err
	}
	select {
	case h.Broadcast <- data:
		return nil
	default:
		return errors.New("broadcast queue full, message dropped")
	}
}
