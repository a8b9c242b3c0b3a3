// Package adapters connects the event broker to the real-time transports.
package adapters

import (
	"github.com/agentstation/locallift/internal/server/events"
	"github.com/agentstation/locallift/internal/server/sse"
	ws "github.com/agentstation/locallift/internal/server/websocket"
)

// Func turns a delivery function into an events.Subscriber.
type Func func(events.Event)

// Send implements events.Subscriber.
func (f Func) Send(e events.Event) error {
	f(e)
	return nil
}

// Close implements events.Subscriber. Transports own their lifecycle.
func (Func) Close() error {
	return nil
}

// WebSocket forwards events to every hub client.
func WebSocket(hub *ws.Hub) Func {
	return func(e events.Event) {
		hub.Broadcast(ws.Message{Type: string(e.Type), Timestamp: e.Timestamp, Data: e.Data})
	}
}

// SSE forwards events to every open stream.
func SSE(b *sse.Broadcaster) Func {
	return func(e events.Event) {
		b.Broadcast(string(e.Type), e.Data)
	}
}
