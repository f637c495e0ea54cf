package websocket

import (
	"log"
	"sync"
)

// Hub tracks every registered connection, the rooms it has joined, and which
// identity is currently online. A room is just a named broadcast group: a
// user's personal inbox room is named after their email, a conversation room
// after the conversation id.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	rooms   map[string]map[*Client]struct{}
	online  map[string]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		rooms:   make(map[string]map[*Client]struct{}),
		online:  make(map[string]*Client),
	}
}

// Register records an authenticated client, marks its identity online
// (last-connected wins) and announces the transition to every connection.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.online[c.identity.Email] = c
	h.mu.Unlock()

	log.Printf("Client registered: %s", c.identity.Email)
	h.broadcastAll(OutEvent{
		Event: EventUserStatus,
		Data:  UserStatusPayload{UserID: c.identity.ID, Status: StatusOnline},
	})
}

// Unregister removes the client from every room and, if it still owns its
// identity's presence mapping, marks the identity offline.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	for name, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, name)
		}
	}
	wentOffline := false
	if cur, ok := h.online[c.identity.Email]; ok && cur == c {
		delete(h.online, c.identity.Email)
		wentOffline = true
	}
	h.mu.Unlock()

	log.Printf("Client unregistered: %s", c.identity.Email)
	if wentOffline {
		h.broadcastAll(OutEvent{
			Event: EventUserStatus,
			Data:  UserStatusPayload{UserID: c.identity.ID, Status: StatusOffline},
		})
	}
}

func (h *Hub) Join(room string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][c] = struct{}{}
}

func (h *Hub) Leave(room string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// IsOnline reports whether the identity currently holds an active connection.
func (h *Hub) IsOnline(email string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.online[email]
	return ok
}

// Broadcast delivers the event to every member of the room. Delivery is
// best-effort: a failed write is logged and skipped, never fatal.
func (h *Hub) Broadcast(room string, e OutEvent) {
	h.BroadcastExcept(room, nil, e)
}

// BroadcastExcept delivers the event to every member of the room other than
// except.
func (h *Hub) BroadcastExcept(room string, except *Client, e OutEvent) {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		if c != except {
			members = append(members, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range members {
		if err := c.send(e); err != nil {
			log.Printf("Error sending %s to %s: %v", e.Event, c.identity.Email, err)
		}
	}
}

func (h *Hub) broadcastAll(e OutEvent) {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		members = append(members, c)
	}
	h.mu.RUnlock()

	for _, c := range members {
		if err := c.send(e); err != nil {
			log.Printf("Error sending %s to %s: %v", e.Event, c.identity.Email, err)
		}
	}
}
