// Package events fans catalog changes out to the real-time transports.
//
// The client's hooks publish into a Broker, which forwards every event to
// each subscribed transport (WebSocket, SSE).
package events

import (
	"strings"
	"time"
)

// EventType represents the type of catalog event.
type EventType string

// Event types for catalog changes.
const (
	// CatalogReplaced is published after an import replaced the catalog.
	CatalogReplaced EventType = "catalog.replaced"
	// FavoriteToggled is published after a favorite was added or removed.
	FavoriteToggled EventType = "favorite.toggled"
	// ReviewAdded is published after a review was added.
	ReviewAdded EventType = "review.added"

	// ClientConnected is published by the transports.
	ClientConnected EventType = "client.connected"
)

// Event represents a catalog event with type, timestamp, and data.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Types is a set of event types a client asked for. The zero value accepts
// every type.
type Types map[EventType]struct{}

// ParseTypes reads a comma separated list such as
// "favorite.toggled,review.added". Blank entries are skipped.
func ParseTypes(list string) Types {
	var types Types
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if types == nil {
			types = make(Types)
		}
		types[EventType(part)] = struct{}{}
	}
	return types
}

// Accepts reports whether an event of type t should be delivered.
// ClientConnected always passes.
func (t Types) Accepts(et EventType) bool {
	if len(t) == 0 || et == ClientConnected {
		return true
	}
	_, ok := t[et]
	return ok
}
