package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/charlesng35/restaurants/internal/realtime"
)

func newRealtimeServer(t *testing.T, hub *realtime.Hub) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	handler := NewRealtimeHandler(hub)
	r.GET("/ws", handler.Stream)
	r.GET("/ws/:stream", handler.Stream)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func TestRealtimeStreamDeliversBroadcasts(t *testing.T) {
	hub := realtime.NewHub()
	t.Cleanup(hub.Close)
	server := newRealtimeServer(t, hub)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/restaurants"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool {
		return hub.Subscribers(realtime.StreamRestaurants) == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.Broadcast(realtime.StreamRestaurants, realtime.Message{Event: "restaurant.created"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg realtime.Message
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "restaurant.created", msg.Event)
}

func TestRealtimeStreamRejectsUnknownStream(t *testing.T) {
	server := newRealtimeServer(t, realtime.NewHub())

	resp, err := http.Get(server.URL + "/ws/sessions")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRealtimeStreamWithoutHub(t *testing.T) {
	server := newRealtimeServer(t, nil)

	resp, err := http.Get(server.URL + "/ws/restaurants")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
