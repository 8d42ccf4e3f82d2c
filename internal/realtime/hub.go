package realtime

import (
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/charlesng35/restaurants/pkg/logger"
	"github.com/charlesng35/restaurants/pkg/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 << 10

	defaultBufferSize = 64
)

// Message represents a JSON payload delivered to realtime subscribers.
type Message struct {
	Stream string `json:"stream"`
	Event  string `json:"event"`
	Data   any    `json:"data,omitempty"`
}

type controlMessage struct {
	Action  string   `json:"action"`
	Streams []string `json:"streams"`
}

// Hub fans restaurant events out to websocket subscribers.
type Hub struct {
	mu            sync.RWMutex
	subscriptions map[string]map[*connection]struct{}
	clients       map[*connection]struct{}
	upgrader      websocket.Upgrader
	log           *zap.Logger
}

// NewHub constructs a realtime hub.
func NewHub() *Hub {
	return &Hub{
		subscriptions: make(map[string]map[*connection]struct{}),
		clients:       make(map[*connection]struct{}),
		log:           logger.WithModule("realtime"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     sameOriginOrLoopback,
		},
	}
}

// Serve upgrades the HTTP connection to a WebSocket and subscribes it to the
// given streams. Unknown streams are ignored. It blocks until the client leaves.
func (h *Hub) Serve(streams []string, w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", zap.Error(err))
		return
	}

	client := newConnection(h, conn)
	h.register(client)
	h.subscribe(client, streams)

	go client.writeLoop()
	client.readLoop()
}

// Broadcast delivers a message to every subscriber of the stream.
func (h *Hub) Broadcast(stream string, message Message) int {
	stream = normalizeStream(stream)
	if stream == "" {
		return 0
	}

	h.mu.RLock()
	targets := make([]*connection, 0, len(h.subscriptions[stream]))
	for client := range h.subscriptions[stream] {
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	message.Stream = stream
	delivered := 0
	for _, client := range targets {
		if h.enqueue(client, message) {
			delivered++
		}
	}
	return delivered
}

// Subscribers reports how many clients listen on the stream.
func (h *Hub) Subscribers(stream string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscriptions[normalizeStream(stream)])
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.RLock()
	clients := make([]*connection, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		client.close()
	}
}

func (h *Hub) register(client *connection) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()
	metrics.RealtimeConnections.Inc()
}

func (h *Hub) subscribe(client *connection, streams []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	for _, stream := range uniqueStreams(streams) {
		if !isKnownStream(stream) {
			h.log.Debug("ignoring unknown stream", zap.String("stream", stream))
			continue
		}
		if h.subscriptions[stream] == nil {
			h.subscriptions[stream] = make(map[*connection]struct{})
		}
		h.subscriptions[stream][client] = struct{}{}
	}
}

func (h *Hub) unsubscribe(client *connection, streams []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, stream := range uniqueStreams(streams) {
		h.removeSubscriptionLocked(client, stream)
	}
}

func (h *Hub) unregister(client *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	for stream := range h.subscriptions {
		h.removeSubscriptionLocked(client, stream)
	}
	metrics.RealtimeConnections.Dec()
}

func (h *Hub) removeSubscriptionLocked(client *connection, stream string) {
	clients, ok := h.subscriptions[stream]
	if !ok {
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.subscriptions, stream)
	}
}

func (h *Hub) enqueue(client *connection, message Message) bool {
	if !client.trySend(message) {
		h.log.Warn("dropping slow realtime client")
		client.close()
		return false
	}
	return true
}

type connection struct {
	hub    *Hub
	socket *websocket.Conn
	send   chan Message

	mu     sync.Mutex
	closed bool
}

func newConnection(hub *Hub, conn *websocket.Conn) *connection {
	return &connection{
		hub:    hub,
		socket: conn,
		send:   make(chan Message, defaultBufferSize),
	}
}

// trySend queues a message without blocking. It fails when the buffer is full
// or the connection is already closed.
func (c *connection) trySend(message Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

func (c *connection) readLoop() {
	defer c.close()

	c.socket.SetReadLimit(maxMessageSize)
	_ = c.socket.SetReadDeadline(time.Now().Add(pongWait))
	c.socket.SetPongHandler(func(string) error {
		return c.socket.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debug("unexpected close", zap.Error(err))
			}
			return
		}
		if len(payload) == 0 {
			continue
		}

		var ctrl controlMessage
		if err := json.Unmarshal(payload, &ctrl); err != nil {
			c.hub.log.Debug("invalid control payload", zap.Error(err))
			continue
		}

		switch strings.ToLower(strings.TrimSpace(ctrl.Action)) {
		case "subscribe":
			c.hub.subscribe(c, ctrl.Streams)
		case "unsubscribe":
			c.hub.unsubscribe(c, ctrl.Streams)
		case "ping":
			c.trySend(Message{Event: "pong"})
		default:
			c.hub.log.Debug("unsupported control action", zap.String("action", ctrl.Action))
		}
	}
}

func (c *connection) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.socket.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.socket.WriteMessage(websocket.CloseMessage, []byte{})
				_ = c.socket.Close()
				return
			}
			if err := c.socket.WriteJSON(message); err != nil {
				c.close()
				return
			}
		case <-ticker.C:
			_ = c.socket.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.socket.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		}
	}
}

// close unregisters the client and lets the write loop send a close frame.
func (c *connection) close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	c.mu.Unlock()

	c.hub.unregister(c)
}

func sameOriginOrLoopback(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}
	originHost := hostWithoutPort(parsed.Host)
	return strings.EqualFold(originHost, hostWithoutPort(r.Host)) || isLoopback(originHost)
}

func hostWithoutPort(host string) string {
	host = strings.TrimSpace(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

func isLoopback(host string) bool {
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}
	return strings.EqualFold(host, "localhost")
}

func isKnownStream(stream string) bool {
	for _, known := range KnownStreams {
		if stream == known {
			return true
		}
	}
	return false
}

func normalizeStream(stream string) string {
	return strings.ToLower(strings.TrimSpace(stream))
}

func uniqueStreams(streams []string) []string {
	seen := make(map[string]struct{}, len(streams))
	var result []string
	for _, stream := range streams {
		if stream = normalizeStream(stream); stream != "" {
			if _, exists := seen[stream]; !exists {
				seen[stream] = struct{}{}
				result = append(result, stream)
			}
		}
	}
	return result
}
