package server

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blitzarena/chess-server/internal/messages"
	"github.com/blitzarena/chess-server/pkg/board"
	"github.com/blitzarena/chess-server/pkg/events"
	"github.com/blitzarena/chess-server/pkg/game"
)

// InboundHubMessage are the messages that the hub receives
type InboundHubMessage struct {
	Conn    *Connection             // who sent it
	Message messages.InboundMessage // decoded envelope
}

// Hub keeps track of all active connections and routes their inbound
// messages to the session coordinator. Registration, unregistration and
// message handling run on a single goroutine.
type Hub struct {
	mu          sync.RWMutex
	connections map[*Connection]bool // Registered connections

	register   chan *Connection       // Incoming registration
	unregister chan *Connection       // Incoming unregistration
	inbound    chan InboundHubMessage // Inbound messages to route

	done chan struct{}

	coordinator *game.Coordinator
	publisher   *events.Publisher
	logger      *zap.Logger
}

// NewHub creates a new hub
func NewHub(coordinator *game.Coordinator, publisher *events.Publisher, logger *zap.Logger) *Hub {
	return &Hub{
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		inbound:     make(chan InboundHubMessage),
		done:        make(chan struct{}),
		coordinator: coordinator,
		publisher:   publisher,
		logger:      logger,
	}
}

// Run is the main execution of the hub
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.registerConnection(conn)

		case conn := <-h.unregister:
			h.unregisterConnection(conn)

		case msg := <-h.inbound:
			h.handleInbound(msg)

		case <-h.done:
			return
		}
	}
}

// Register hands a connection to the run loop. A no-op once the hub has
// shut down, so late pump goroutines never block.
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
	}
}

// Unregister hands a closing connection to the run loop. A no-op once
// the hub has shut down.
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Shutdown stops the run loop and closes every connection.
func (h *Hub) Shutdown() {
	close(h.done)

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.connections {
		close(conn.send)
		conn.ws.Close()
		delete(h.connections, conn)
	}
}

func (h *Hub) registerConnection(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[conn] = true

	h.logger.Info("connection registered",
		zap.String("connection_id", conn.ConnectionID().String()),
		zap.String("username", conn.Username()),
		zap.Int("active", len(h.connections)))

	conn.Send(messages.OutboundMessage{
		Event: messages.EventConnected,
		Payload: messages.ConnectedPayload{
			ConnectionID: conn.ConnectionID().String(),
		},
	})
}

func (h *Hub) unregisterConnection(conn *Connection) {
	h.mu.Lock()
	if _, ok := h.connections[conn]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.connections, conn)
	remaining := len(h.connections)
	h.mu.Unlock()

	h.logger.Info("connection unregistered",
		zap.String("connection_id", conn.ConnectionID().String()),
		zap.Int("active", remaining))

	// Clear the queue entry and finalize any active session on this
	// goroutine, so no later inbound message can pair or move a
	// connection that already closed. The send channel stays open until
	// this returns: the terminal broadcast still addresses the departing
	// connection.
	h.coordinator.HandleDisconnect(conn.ConnectionID())

	close(conn.send)

	h.publisher.Publish(events.Event{
		Type:    events.EventConnectionClosed,
		Payload: conn.ConnectionID(),
	})
}

// handleInbound decodes and routes a message from a client.
func (h *Hub) handleInbound(msg InboundHubMessage) {
	switch msg.Message.Type {
	case messages.TypeCreateSession:
		var payload messages.CreateSessionPayload
		if err := json.Unmarshal(msg.Message.Payload, &payload); err != nil {
			h.sendError(msg.Conn, "invalid CREATE_SESSION payload")
			return
		}

		if _, err := h.coordinator.CreateSession(msg.Conn, payload.TimeControlMinutes); err != nil {
			h.sendError(msg.Conn, err.Error())
		}

	case messages.TypeJoinSession:
		var payload messages.JoinSessionPayload
		if err := json.Unmarshal(msg.Message.Payload, &payload); err != nil {
			h.sendError(msg.Conn, "invalid JOIN_SESSION payload")
			return
		}

		id, err := uuid.Parse(payload.SessionID)
		if err != nil {
			h.sendError(msg.Conn, game.ErrNotFound.Error())
			return
		}

		if err := h.coordinator.JoinSession(id, msg.Conn); err != nil {
			h.sendError(msg.Conn, err.Error())
		}

	case messages.TypeFindMatch:
		if err := h.coordinator.RequestMatch(msg.Conn); err != nil {
			h.sendError(msg.Conn, err.Error())
		}

	case messages.TypeCancelFindMatch:
		h.coordinator.CancelMatchRequest(msg.Conn)

	case messages.TypeMakeMove:
		var payload messages.MakeMovePayload
		if err := json.Unmarshal(msg.Message.Payload, &payload); err != nil {
			h.sendError(msg.Conn, "invalid MAKE_MOVE payload")
			return
		}

		id, err := uuid.Parse(payload.SessionID)
		if err != nil {
			h.sendError(msg.Conn, game.ErrNotFound.Error())
			return
		}

		from, err := board.ParseSquare(payload.From)
		if err != nil {
			h.sendError(msg.Conn, game.ErrInvalidMove.Error())
			return
		}
		to, err := board.ParseSquare(payload.To)
		if err != nil {
			h.sendError(msg.Conn, game.ErrInvalidMove.Error())
			return
		}

		if err := h.coordinator.SubmitMove(id, msg.Conn, from, to); err != nil {
			if errors.Is(err, game.ErrNotFound) {
				// A move for a finished or unknown session fails silently.
				return
			}
			h.sendError(msg.Conn, err.Error())
		}

	default:
		h.sendError(msg.Conn, "unknown message type")
	}
}

// ConnectionCount returns the number of registered connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

func (h *Hub) sendError(conn *Connection, msg string) {
	conn.Send(messages.OutboundMessage{
		Event: messages.EventError,
		Payload: messages.ErrorPayload{
			Message: msg,
		},
	})
}
