package live

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	go hub.Run()
	t.Cleanup(hub.Stop)
	return hub
}

func serveRoom(t *testing.T, hub *Hub, room string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn, room)
		if !hub.Subscribe(client) {
			conn.Close()
			return
		}
		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_BroadcastToRoom(t *testing.T) {
	hub := newTestHub(t)
	srv := serveRoom(t, hub, "leaderboard")
	conn := dial(t, srv)

	require.Eventually(t, func() bool { return hub.ClientCount("leaderboard") == 1 }, time.Second, 10*time.Millisecond)

	hub.BroadcastToRoom("leaderboard", map[string]int{"score": 7})
	hub.BroadcastToRoom("other-room", map[string]int{"score": 1})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"score":7}`, string(msg))
}

func TestHub_UnregisterOnDisconnect(t *testing.T) {
	hub := newTestHub(t)
	srv := serveRoom(t, hub, "leaderboard")
	conn := dial(t, srv)

	require.Eventually(t, func() bool { return hub.ClientCount("leaderboard") == 1 }, time.Second, 10*time.Millisecond)
	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount("leaderboard") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastToEmptyRoomIsNoop(t *testing.T) {
	hub := newTestHub(t)
	assert.NotPanics(t, func() { hub.BroadcastToRoom("nobody", "hi") })
}

func TestClient_TrySendAfterClose(t *testing.T) {
	c := &Client{Send: make(chan []byte, 1)}
	assert.True(t, c.trySend([]byte("a")))
	assert.False(t, c.trySend([]byte("b")), "buffer is full")

	c.closeSend()
	c.closeSend()
	assert.False(t, c.trySend([]byte("c")))
}
