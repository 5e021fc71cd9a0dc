package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/voxlume/tts-backend/internal/core/job"
	"github.com/voxlume/tts-backend/pkg/ws"
)

const defaultReadWait = 60 * time.Second

// EventsHandler streams job status transitions over a websocket, as a push
// alternative to polling /api/status.
type EventsHandler struct {
	Hub      *ws.Hub
	Registry *job.Registry
	Upgrader websocket.Upgrader

	// ReadWait bounds how long a client may stay silent; pongs refresh it.
	ReadWait time.Duration
}

func NewEventsHandler(hub *ws.Hub, reg *job.Registry) *EventsHandler {
	return &EventsHandler{
		Hub:      hub,
		Registry: reg,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		ReadWait: defaultReadWait,
	}
}

func (h *EventsHandler) Events(c *gin.Context) {
	id := c.Param("job_id")

	if _, ok := h.Registry.Get(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	// The current snapshot is delivered by the hub together with the
	// subscription, so a transition racing the upgrade is not lost.
	v, _ := h.Registry.Get(id)
	h.Hub.Add(id, conn, JobStatus(v))

	// A transition may have slipped in between the snapshot and the
	// subscription; re-broadcast so no subscriber is left on a stale state.
	if cur, ok := h.Registry.Get(id); ok && cur.Status != v.Status {
		h.Hub.Broadcast(id, JobStatus(cur))
	}

	defer func() {
		h.Hub.Remove(id, conn)
		conn.Close()
	}()

	conn.SetReadLimit(1 << 10)
	conn.SetReadDeadline(time.Now().Add(h.ReadWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(h.ReadWait))
		return nil
	})

	// Updates arrive via the hub; block here until the client goes away or
	// stays silent past the read deadline.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
