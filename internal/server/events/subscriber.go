package events

// Subscriber receives every event published on a Broker. The real-time
// transports implement it through the adapters package.
type Subscriber interface {
	// Send delivers e. Implementations must not block the broker.
	Send(e Event) error

	// Close is called when the broker shuts down or unsubscribes.
	Close() error
}
