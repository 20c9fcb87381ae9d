package game

import "errors"

// Recoverable session errors. They are reported only to the originating
// connection and never mutate session state.
var (
	ErrNotFound        = errors.New("session not found")
	ErrFull            = errors.New("session already has both players")
	ErrAlreadyJoined   = errors.New("already joined this session")
	ErrTurnViolation   = errors.New("not your turn")
	ErrInvalidMove     = errors.New("illegal move")
	ErrUnauthenticated = errors.New("authentication required")
)
