// Package ws fans job lifecycle updates out to websocket subscribers.
package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

type Hub struct {
	mu    sync.Mutex
	conns map[string][]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{conns: map[string][]*websocket.Conn{}}
}

// Add subscribes c to jobID and sends it the initial payload. The write
// happens under the hub lock so it cannot interleave with a broadcast.
func (h *Hub) Add(jobID string, c *websocket.Conn, initial any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if initial != nil {
		if err := c.WriteJSON(initial); err != nil {
			c.Close()

			return
		}
	}

	h.conns[jobID] = append(h.conns[jobID], c)
}

func (h *Hub) Remove(jobID string, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.conns[jobID]
	for i, conn := range conns {
		if conn == c {
			h.conns[jobID] = append(conns[:i], conns[i+1:]...)

			break
		}
	}

	if len(h.conns[jobID]) == 0 {
		delete(h.conns, jobID)
	}
}

// Broadcast sends v as JSON to every subscriber of jobID. Connections that
// fail to write are closed and dropped.
func (h *Hub) Broadcast(jobID string, v any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.conns[jobID]
	alive := conns[:0]

	for _, c := range conns {
		if err := c.WriteJSON(v); err != nil {
			c.Close()

			continue
		}

		alive = append(alive, c)
	}

	if len(alive) == 0 {
		delete(h.conns, jobID)

		return
	}

	h.conns[jobID] = alive
}
