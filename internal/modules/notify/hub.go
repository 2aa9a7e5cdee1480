package notify

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// client pairs a connection with a write lock. gorilla allows at most one
// writer on a connection at a time, and here the ping loop and the event
// fan-out run on different goroutines.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

func (c *client) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// Hub tracks one connection per staff member and fans events out to all
// of them.
type Hub struct {
	clients map[int64]*client
	mutex   sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]*client),
	}
}

// Register attaches the connection and returns its client wrapper; every
// later write, pings included, must go through it.
func (h *Hub) Register(staffID int64, conn *websocket.Conn) *client {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.clients[staffID]; exists && old != nil {
		_ = old.conn.Close()
	}

	cl := &client{conn: conn}
	h.clients[staffID] = cl
	return cl
}

func (h *Hub) Unregister(staffID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if cl, exists := h.clients[staffID]; exists && cl != nil {
		_ = cl.conn.Close()
		delete(h.clients, staffID)
	}
}

func (h *Hub) SendToStaff(staffID int64, message interface{}) bool {
	h.mutex.RLock()
	cl, exists := h.clients[staffID]
	h.mutex.RUnlock()

	if !exists || cl == nil {
		return false
	}

	if err := cl.writeJSON(message); err != nil {
		h.Unregister(staffID)
		return false
	}

	return true
}

// Broadcast sends the message to every connected staff member and
// returns how many received it.
func (h *Hub) Broadcast(message interface{}) int {
	h.mutex.RLock()
	ids := make([]int64, 0, len(h.clients))
	for staffID := range h.clients {
		ids = append(ids, staffID)
	}
	h.mutex.RUnlock()

	sent := 0
	for _, staffID := range ids {
		if h.SendToStaff(staffID, message) {
			sent++
		}
	}
	return sent
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.clients)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for staffID, cl := range h.clients {
		if cl != nil {
			_ = cl.conn.Close()
		}
		delete(h.clients, staffID)
	}
}
