package messages

import "encoding/json"

// Inbound message types.
const (
	TypeCreateSession   = "CREATE_SESSION"
	TypeJoinSession     = "JOIN_SESSION"
	TypeFindMatch       = "FIND_MATCH"
	TypeCancelFindMatch = "CANCEL_FIND_MATCH"
	TypeMakeMove        = "MAKE_MOVE"
)

// InboundMessage is the generic wrapper for messages coming from the client.
// The "type" field tells us the action; "payload" is the data we parse further.
type InboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// CreateSessionPayload represents the payload for creating a new session
type CreateSessionPayload struct {
	TimeControlMinutes int `json:"time_control_minutes"`
}

// JoinSessionPayload represents the payload for joining an open session
type JoinSessionPayload struct {
	SessionID string `json:"session_id"`
}

// MakeMovePayload represents the payload for submitting a move. Squares
// are algebraic ("e2").
type MakeMovePayload struct {
	SessionID string `json:"session_id"`
	From      string `json:"from"`
	To        string `json:"to"`
}
