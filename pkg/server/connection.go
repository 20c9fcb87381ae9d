package server

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/blitzarena/chess-server/internal/messages"
)

// Connection wraps one client websocket. It implements game.Client so the
// coordinator can address participants without knowing the transport.
type Connection struct {
	id       uuid.UUID
	username string // empty for an unauthenticated connection

	ws      *websocket.Conn // The underlying Websocket connection
	hub     *Hub
	send    chan []byte // Buffered channel of outbound messages.
	writeMu sync.Mutex  // Mutex to protect concurrent writes to ws.

	logger *zap.Logger
}

// NewConnection creates a connection for an upgraded websocket.
func NewConnection(ws *websocket.Conn, hub *Hub, username string, logger *zap.Logger) *Connection {
	return &Connection{
		id:       uuid.New(),
		username: username,
		ws:       ws,
		hub:      hub,
		send:     make(chan []byte, 256), // buffered for outgoing messages
		logger:   logger,
	}
}

// ConnectionID returns the connection's identifier.
func (c *Connection) ConnectionID() uuid.UUID { return c.id }

// Username returns the authenticated identity, or empty.
func (c *Connection) Username() string { return c.username }

// Send queues an outbound message for the write pump.
func (c *Connection) Send(msg messages.OutboundMessage) {
	c.SendJSON(msg)
}

// ReadPump handles inbound messages from the client
func (c *Connection) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.ws.Close()
	}()

	for {
		msgType, msg, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error("read error", zap.Error(err))
			}
			break
		}

		// We only handle text
		if msgType == websocket.TextMessage {
			var inbound messages.InboundMessage
			if err := json.Unmarshal(msg, &inbound); err == nil {
				select {
				case c.hub.inbound <- InboundHubMessage{
					Conn:    c,
					Message: inbound,
				}:
				case <-c.hub.done:
					return
				}
			} else {
				c.logger.Error("failed to parse inbound JSON", zap.Error(err))
			}
		}
	}
}

// WritePump handles outbound messages to the client
func (c *Connection) WritePump() {
	defer func() {
		c.ws.Close()
	}()

	for {
		message, ok := <-c.send
		if !ok {
			// Channel closed
			c.logger.Info(
				"send channel closed for connection",
				zap.String("connection_id", c.id.String()),
			)
			return
		}
		c.writeMu.Lock()
		err := c.ws.WriteMessage(websocket.TextMessage, message)
		c.writeMu.Unlock()
		if err != nil {
			c.logger.Error("write error", zap.Error(err))
			return
		}
	}
}

// SendJSON is a helper for sending JSON to this connection
func (c *Connection) SendJSON(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Error("error marshaling JSON", zap.Error(err))
		return
	}

	select {
	case c.send <- data:
	default:
		c.logger.Warn("dropping message, send buffer full",
			zap.String("connection_id", c.id.String()))
	}
}
