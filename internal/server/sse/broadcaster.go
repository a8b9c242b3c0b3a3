// Package sse streams catalog events as Server-Sent Events.
//
// Events carry increasing ids. A reconnecting client that sends
// Last-Event-ID is replayed whatever it missed from a short history.
package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/locallift/internal/server/events"
)

const (
	historySize = 64
	clientQueue = 32
)

// Event is one SSE frame.
type Event struct {
	ID    uint64
	Event string
	Data  any
}

type client struct {
	events chan Event
	types  events.Types
}

// Broadcaster fans events out to streaming HTTP clients.
type Broadcaster struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	history []Event
	nextID  uint64
	closed  bool
	logger  *zerolog.Logger
}

// NewBroadcaster creates a broadcaster with no clients.
func NewBroadcaster(logger *zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		clients: make(map[*client]struct{}),
		logger:  logger,
	}
}

// Run blocks until ctx is done and then ends every stream.
func (b *Broadcaster) Run(ctx context.Context) {
	<-ctx.Done()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for c := range b.clients {
		delete(b.clients, c)
		close(c.events)
	}
}

// Broadcast assigns the next id to event, records it and delivers it to
// every interested client. Clients with a full queue miss the event.
func (b *Broadcaster) Broadcast(name string, data any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	event := Event{ID: b.nextID, Event: name, Data: data}
	b.history = append(b.history, event)
	if len(b.history) > historySize {
		b.history = b.history[len(b.history)-historySize:]
	}

	for c := range b.clients {
		if !c.types.Accepts(events.EventType(name)) {
			continue
		}
		select {
		case c.events <- event:
		default:
			b.logger.Warn().Uint64("event_id", event.ID).Msg("SSE client queue full, event skipped")
		}
	}
}

// ClientCount returns the number of open streams.
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// attach registers c and returns the events it missed after lastID.
func (b *Broadcaster) attach(c *client, lastID uint64) ([]Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, false
	}
	b.clients[c] = struct{}{}

	var missed []Event
	if lastID > 0 {
		for _, e := range b.history {
			if e.ID > lastID && c.types.Accepts(events.EventType(e.Event)) {
				missed = append(missed, e)
			}
		}
	}
	return missed, true
}

func (b *Broadcaster) detach(c *client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		close(c.events)
	}
}

// ServeHTTP streams events until the client disconnects. The "types" query
// parameter narrows the stream.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	lastID, _ := strconv.ParseUint(r.Header.Get("Last-Event-ID"), 10, 64)
	c := &client{
		events: make(chan Event, clientQueue),
		types:  events.ParseTypes(r.URL.Query().Get("types")),
	}
	missed, ok := b.attach(c, lastID)
	if !ok {
		http.Error(w, "Server shutting down", http.StatusServiceUnavailable)
		return
	}
	defer b.detach(c)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	b.write(w, Event{Event: string(events.ClientConnected), Data: map[string]any{"timestamp": time.Now()}})
	for _, e := range missed {
		b.write(w, e)
	}
	flusher.Flush()

	for {
		select {
		case e, open := <-c.events:
			if !open {
				return
			}
			b.write(w, e)
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

func (b *Broadcaster) write(w http.ResponseWriter, e Event) {
	data, err := json.Marshal(e.Data)
	if err != nil {
		b.logger.Error().Err(err).Str("event", e.Event).Msg("Failed to encode SSE event")
		return
	}
	if e.ID > 0 {
		_, _ = fmt.Fprintf(w, "id: %d\n", e.ID)
	}
	if e.Event != "" {
		_, _ = fmt.Fprintf(w, "event: %s\n", e.Event)
	}
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}
