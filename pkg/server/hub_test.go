package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/blitzarena/chess-server/internal/messages"
	"github.com/blitzarena/chess-server/pkg/events"
	"github.com/blitzarena/chess-server/pkg/game"
	"github.com/blitzarena/chess-server/pkg/rules"
)

func newTestHub(t *testing.T) (*Hub, *game.Store, *game.Queue) {
	t.Helper()

	logger := zap.NewNop()
	store := game.NewStore()
	queue := game.NewQueue()
	scheduler := game.NewScheduler(time.Hour, logger)
	publisher := events.NewPublisher()
	coordinator := game.NewCoordinator(store, queue, scheduler, rules.NewEngine(), publisher, logger, 5)

	return NewHub(coordinator, publisher, logger), store, queue
}

func findMatch(conn *Connection) InboundHubMessage {
	return InboundHubMessage{
		Conn:    conn,
		Message: messages.InboundMessage{Type: messages.TypeFindMatch},
	}
}

// Events for a connection are processed in arrival order on the hub
// goroutine: once its socket closes, a later FIND_MATCH from someone
// else must never pair against it.
func TestDisconnectClearsQueueBeforeLaterPairing(t *testing.T) {
	h, store, queue := newTestHub(t)

	alice := NewConnection(nil, h, "alice", zap.NewNop())
	bob := NewConnection(nil, h, "bob", zap.NewNop())
	h.registerConnection(alice)
	h.registerConnection(bob)

	h.handleInbound(findMatch(alice))
	require.Equal(t, 1, queue.Len())

	h.unregisterConnection(alice)
	assert.Equal(t, 0, queue.Len())

	h.handleInbound(findMatch(bob))
	assert.Equal(t, 1, queue.Len(), "bob must wait, not pair with a closed connection")
	assert.Equal(t, 0, store.Len())
}

func TestDisconnectFinalizesSessionBeforeLaterMessages(t *testing.T) {
	h, store, queue := newTestHub(t)

	alice := NewConnection(nil, h, "alice", zap.NewNop())
	bob := NewConnection(nil, h, "bob", zap.NewNop())
	h.registerConnection(alice)
	h.registerConnection(bob)

	h.handleInbound(findMatch(alice))
	h.handleInbound(findMatch(bob))
	require.Equal(t, 1, store.Len())

	h.unregisterConnection(bob)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 0, queue.Len())
}

func TestRegisterAfterShutdownDoesNotBlock(t *testing.T) {
	h, _, _ := newTestHub(t)
	h.Shutdown()

	conn := NewConnection(nil, h, "alice", zap.NewNop())

	released := make(chan struct{})
	go func() {
		h.Register(conn)
		h.Unregister(conn)
		close(released)
	}()

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("register/unregister blocked after shutdown")
	}
}
