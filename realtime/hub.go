package realtime

import (
	"strconv"
	"sync"
)

// ChannelName is the deterministic channel id for a conversation.
func ChannelName(conversationID int64) string {
	return "conversation." + strconv.FormatInt(conversationID, 10)
}

// Hub tracks websocket clients and their per-conversation subscriptions.
// Delivery is at-most-once and non-durable; offline subscribers catch up
// through the ordinary history endpoint.
type Hub struct {
	mu          sync.RWMutex
	clients     map[string]*Client
	rooms       map[int64]map[string]*Client
	clientRooms map[string]map[int64]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:     make(map[string]*Client),
		rooms:       make(map[int64]map[string]*Client),
		clientRooms: make(map[string]map[int64]struct{}),
	}
}

// Attach registers a connected client and starts its write loop.
func (h *Hub) Attach(c *Client) {
	h.mu.Lock()
	h.clients[c.ID] = c
	h.clientRooms[c.ID] = make(map[int64]struct{})
	h.mu.Unlock()

	c.Start()
}

// Detach removes the client from every room it joined.
func (h *Hub) Detach(c *Client) {
	h.mu.Lock()
	for conversationID := range h.clientRooms[c.ID] {
		h.leaveLocked(conversationID, c.ID)
	}
	delete(h.clientRooms, c.ID)
	delete(h.clients, c.ID)
	h.mu.Unlock()
}

// Subscribe adds the client to the conversation's channel. Authorization is
// the caller's responsibility.
func (h *Hub) Subscribe(conversationID int64, c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c.ID]; !ok {
		h.mu.Unlock()
		return
	}

	room := h.rooms[conversationID]
	if room == nil {
		room = make(map[string]*Client)
		h.rooms[conversationID] = room
	}
	room[c.ID] = c
	h.clientRooms[c.ID][conversationID] = struct{}{}
	h.mu.Unlock()
}

// Unsubscribe removes the client from the conversation's channel.
func (h *Hub) Unsubscribe(conversationID int64, c *Client) {
	h.mu.Lock()
	h.leaveLocked(conversationID, c.ID)
	h.mu.Unlock()
}

// Publish fans payload out to every subscriber of the conversation except
// connections belonging to excludeUserID. Returns the delivered count.
// Enqueueing never blocks; slow clients are dropped by Send.
func (h *Hub) Publish(conversationID int64, payload []byte, excludeUserID int64) int {
	h.mu.RLock()
	room := h.rooms[conversationID]
	if len(room) == 0 {
		h.mu.RUnlock()
		return 0
	}

	delivered := 0
	for _, c := range room {
		if c.UserID == excludeUserID {
			continue
		}
		if err := c.Send(payload); err == nil {
			delivered++
		}
	}
	h.mu.RUnlock()
	return delivered
}

// Close terminates every tracked client.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[string]*Client)
	h.rooms = make(map[int64]map[string]*Client)
	h.clientRooms = make(map[string]map[int64]struct{})
	h.mu.Unlock()

	for _, c := range clients {
		c.Close(1001, "server shutdown")
	}
}

func (h *Hub) leaveLocked(conversationID int64, clientID string) {
	room := h.rooms[conversationID]
	if room == nil {
		return
	}
	delete(room, clientID)
	if len(room) == 0 {
		delete(h.rooms, conversationID)
	}
	if memberships, ok := h.clientRooms[clientID]; ok {
		delete(memberships, conversationID)
	}
}
