package ws_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxlume/tts-backend/pkg/ws"
)

type event struct {
	Status string `json:"status"`
}

func dialHub(t *testing.T, hub *ws.Hub, jobID string, initial any) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Add(jobID, conn, initial)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestHubDeliversInitialAndBroadcast(t *testing.T) {
	hub := ws.NewHub()
	conn := dialHub(t, hub, "job-1", event{Status: "pending"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))

	var got event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "pending", got.Status)

	// Reading the initial payload proves the subscription is registered, so
	// this broadcast cannot be lost.
	hub.Broadcast("job-1", event{Status: "complete"})

	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "complete", got.Status)
}

func TestHubBroadcastToUnknownJobIsNoop(t *testing.T) {
	hub := ws.NewHub()

	assert.NotPanics(t, func() {
		hub.Broadcast("nobody-listening", event{Status: "complete"})
	})
}
