package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	p := NewPublisher()

	first := make(chan Event, 1)
	second := make(chan Event, 1)
	p.Subscribe(EventSessionFinished, func(ev Event) { first <- ev })
	p.Subscribe(EventSessionFinished, func(ev Event) { second <- ev })

	p.Publish(Event{Type: EventSessionFinished, SessionID: "s1", Payload: 42})

	for _, ch := range []chan Event{first, second} {
		select {
		case ev := <-ch:
			assert.Equal(t, "s1", ev.SessionID)
			assert.Equal(t, 42, ev.Payload)
		case <-time.After(time.Second):
			t.Fatal("subscriber never received the event")
		}
	}
}

func TestPublishFiltersByType(t *testing.T) {
	p := NewPublisher()

	got := make(chan Event, 1)
	p.Subscribe(EventConnectionClosed, func(ev Event) { got <- ev })

	p.Publish(Event{Type: EventSessionFinished})

	select {
	case <-got:
		t.Fatal("handler received an event of another type")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	p := NewPublisher()
	// Must not panic or block.
	p.Publish(Event{Type: EventConnectionClosed})
}
