package events

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Notice tells connected clients that part of the catalog changed and
// which entry (if any) triggered it. Clients re-fetch what they show.
type Notice struct {
	Scope string `json:"scope"`
	ID    string `json:"id,omitempty"`
}

// Hub fans change notices out to every connected websocket client.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{conns: map[*websocket.Conn]bool{}}
}

// Handle upgrades the request and keeps the connection registered until
// the client goes away. Clients only listen; inbound messages are drained
// and dropped.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("events: websocket upgrade: %v", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("events: websocket read: %v", err)
			}
			return
		}
	}
}

// Broadcast sends a notice to every client. Connections that fail to
// accept the write are dropped.
func (h *Hub) Broadcast(scope, id string) {
	notice := Notice{Scope: scope, ID: id}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(notice); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
