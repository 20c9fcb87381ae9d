package messages

import "github.com/blitzarena/chess-server/pkg/board"

// Outbound event names.
const (
	EventConnected      = "CONNECTED"
	EventSessionCreated = "SESSION_CREATED"
	EventMatchSearching = "MATCH_SEARCHING"
	EventMatchJoined    = "MATCH_JOINED"
	EventSessionJoined  = "SESSION_JOINED"
	EventSessionState   = "SESSION_STATE"
	EventSessionOver    = "SESSION_OVER"
	EventError          = "ERROR"
)

// OutboundMessage is how we wrap responses before sending
// them to the client
type OutboundMessage struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

type ConnectedPayload struct {
	ConnectionID string `json:"connection_id"`
}

// SessionCreatedPayload represents the payload after a create session event
type SessionCreatedPayload struct {
	SessionID   string `json:"session_id"`
	WhiteTimeMs int64  `json:"white_time_ms"`
	BlackTimeMs int64  `json:"black_time_ms"`
}

// SessionJoinedPayload is sent to a participant once it holds a side in a
// session, either by joining directly or through matchmaking.
type SessionJoinedPayload struct {
	SessionID   string      `json:"session_id"`
	Side        string      `json:"side"`
	Board       board.Board `json:"board"`
	WhiteTimeMs int64       `json:"white_time_ms"`
	BlackTimeMs int64       `json:"black_time_ms"`
}

// SessionStatePayload represents the authoritative session state broadcast
// to both participants after every applied move.
type SessionStatePayload struct {
	SessionID   string      `json:"session_id"`
	Board       board.Board `json:"board"`
	Turn        string      `json:"turn"`
	Check       string      `json:"check"`
	WhiteTimeMs int64       `json:"white_time_ms"`
	BlackTimeMs int64       `json:"black_time_ms"`
	LastEventMs int64       `json:"last_event_ms"`
}

// SessionOverPayload is the terminal broadcast. Winner is empty for a
// stalemate.
type SessionOverPayload struct {
	SessionID string `json:"session_id"`
	Winner    string `json:"winner"`
	Reason    string `json:"reason"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
