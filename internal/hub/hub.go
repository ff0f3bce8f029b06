package hub

import (
	"encoding/json"
	"sync"

	"github.com/Harshkesharwani789/wave-backend/internal/config"
	"github.com/Harshkesharwani789/wave-backend/pkg/log"
)

// Hub tracks connected clients and per-booking chat rooms. Room membership
// is the single source of truth for who receives a booking's broadcasts:
// a connection is only in a room after an eligible join, and is removed
// from every room when it unregisters.
type Hub struct {
	clients    map[string]*Client            // clientID -> client
	rooms      map[string]map[string]*Client // bookingID -> clientID -> client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *RoomMessage
	mu         sync.RWMutex
	config     config.WebSocketConfig
}

// RoomMessage is a payload fanned out to every member of a booking room.
type RoomMessage struct {
	BookingID string
	Message   []byte
}

func NewHub(cfg config.WebSocketConfig) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *RoomMessage, 256),
		config:     cfg,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			log.L().Debug().Str("client_id", client.ID).Msg("client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				for bookingID, members := range h.rooms {
					delete(members, client.ID)
					if len(members) == 0 {
						delete(h.rooms, bookingID)
					}
				}
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()
			log.L().Debug().Str("client_id", client.ID).Msg("client unregistered")

		case msg := <-h.broadcast:
			h.mu.RLock()
			if members, ok := h.rooms[msg.BookingID]; ok {
				for _, client := range members {
					select {
					case client.Send <- msg.Message:
					default:
						go h.removeClient(client)
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// JoinRoom adds the client to a booking room. Joining a room the client
// is already in is a no-op.
func (h *Hub) JoinRoom(client *Client, bookingID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[bookingID]; !ok {
		h.rooms[bookingID] = make(map[string]*Client)
	}
	h.rooms[bookingID][client.ID] = client
	log.L().Info().Str("client_id", client.ID).Str(log.FieldBookingID, bookingID).Msg("client joined booking room")
}

// LeaveRoom removes the client from a booking room.
func (h *Hub) LeaveRoom(client *Client, bookingID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members, ok := h.rooms[bookingID]; ok {
		delete(members, client.ID)
		if len(members) == 0 {
			delete(h.rooms, bookingID)
		}
	}
	log.L().Info().Str("client_id", client.ID).Str(log.FieldBookingID, bookingID).Msg("client left booking room")
}

// IsMember reports whether the client has joined the booking's room.
func (h *Hub) IsMember(clientID, bookingID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members, ok := h.rooms[bookingID]
	if !ok {
		return false
	}
	_, ok = members[clientID]
	return ok
}

// RoomSize returns the number of clients in a booking room.
func (h *Hub) RoomSize(bookingID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if members, ok := h.rooms[bookingID]; ok {
		return len(members)
	}
	return 0
}

// BroadcastToRoom marshals the message and fans it out to every member of
// the booking's room.
func (h *Hub) BroadcastToRoom(bookingID string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	h.broadcast <- &RoomMessage{
		BookingID: bookingID,
		Message:   data,
	}
	return nil
}

func (h *Hub) removeClient(client *Client) {
	h.unregister <- client
}
