// Package websocket pushes catalog events to WebSocket clients.
//
// Each client may narrow what it receives, either with the "types" query
// parameter on connect or later by sending {"types":["review.added"]}.
package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/locallift/internal/server/events"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Clients only send subscription updates.
	maxMessageSize = 1024

	sendBuffer = 32
)

// Message is one frame sent to clients.
type Message struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// subscription is the only message clients send.
type subscription struct {
	Types []string `json:"types"`
}

// Hub tracks connected clients and fans messages out to them.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
	closed  bool
	logger  *zerolog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Run blocks until ctx is done and then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.dropLocked(c)
	}
}

// Register adds a client. Clients registered after shutdown are closed
// right away.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(c.send)
		return
	}
	h.clients[c] = struct{}{}
	h.logger.Info().
		Str("client_id", c.id).
		Int("total_clients", len(h.clients)).
		Msg("WebSocket client connected")
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	h.dropLocked(c)
	h.logger.Info().
		Str("client_id", c.id).
		Int("total_clients", len(h.clients)).
		Msg("WebSocket client disconnected")
}

func (h *Hub) dropLocked(c *Client) {
	delete(h.clients, c)
	close(c.send)
}

// Broadcast queues msg for every client whose subscription accepts it.
// A client with a full queue is disconnected.
func (h *Hub) Broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if !c.accepts(events.EventType(msg.Type)) {
			continue
		}
		select {
		case c.send <- msg:
		default:
			h.logger.Warn().Str("client_id", c.id).Msg("WebSocket client too slow, disconnecting")
			h.dropLocked(c)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Client is one WebSocket connection.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan Message

	typesMu sync.RWMutex
	types   events.Types
}

// NewClient wraps conn. types restricts the events delivered; nil means all.
func NewClient(id string, hub *Hub, conn *websocket.Conn, types events.Types) *Client {
	return &Client{
		id:    id,
		hub:   hub,
		conn:  conn,
		send:  make(chan Message, sendBuffer),
		types: types,
	}
}

// ID returns the client id.
func (c *Client) ID() string {
	return c.id
}

func (c *Client) accepts(t events.EventType) bool {
	c.typesMu.RLock()
	defer c.typesMu.RUnlock()
	return c.types.Accepts(t)
}

func (c *Client) subscribe(types []string) {
	var set events.Types
	for _, t := range types {
		if set == nil {
			set = make(events.Types)
		}
		set[events.EventType(t)] = struct{}{}
	}
	c.typesMu.Lock()
	c.types = set
	c.typesMu.Unlock()
}

// ReadPump applies subscription updates until the peer goes away.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug().Err(err).Str("client_id", c.id).Msg("WebSocket read failed")
			}
			return
		}
		var sub subscription
		if err := json.Unmarshal(data, &sub); err != nil {
			c.hub.logger.Debug().Err(err).Str("client_id", c.id).Msg("Ignoring malformed subscription")
			continue
		}
		c.subscribe(sub.Types)
	}
}

// WritePump writes queued messages and keepalive pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
