// Package events provides the in-process publish/subscribe bus that
// decouples the transport layer from the session coordinator and the
// persistence sink.
package events

import "sync"

// EventType represents the type of event
type EventType string

// Define event types
const (
	// EventConnectionClosed fires when a client connection goes away.
	// The hub has already cleared the connection's queue entry and
	// finalized its session by then; the event is for observers outside
	// the session core.
	EventConnectionClosed EventType = "CONNECTION_CLOSED"

	// EventSessionFinished fires exactly once per session on its
	// terminal path; the persistence sink subscribes to it.
	EventSessionFinished EventType = "SESSION_FINISHED"
)

// Event represents an event in the system
type Event struct {
	Type      EventType
	SessionID string // Optional, empty for connection-level events
	Payload   interface{}
}

// Handler is a function that processes events
type Handler func(event Event)

// Publisher is the central event publisher
type Publisher struct {
	mu          sync.RWMutex
	subscribers map[EventType][]Handler
}

// NewPublisher creates a new event publisher
func NewPublisher() *Publisher {
	return &Publisher{
		subscribers: make(map[EventType][]Handler),
	}
}

// Subscribe registers a handler for a specific event type
func (p *Publisher) Subscribe(eventType EventType, handler Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.subscribers[eventType] = append(p.subscribers[eventType], handler)
}

// Publish broadcasts an event to all subscribers. Handlers run on their
// own goroutines, so publishing never blocks the caller.
func (p *Publisher) Publish(event Event) {
	p.mu.RLock()
	handlers := p.subscribers[event.Type]
	p.mu.RUnlock()

	for _, handler := range handlers {
		go handler(event)
	}
}
