package game

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/blitzarena/chess-server/internal/messages"
	"github.com/blitzarena/chess-server/pkg/board"
)

// Reason describes how a session ended.
type Reason string

// Terminal reasons.
const (
	ReasonCheckmate            Reason = "checkmate"
	ReasonStalemate            Reason = "stalemate"
	ReasonTimeout              Reason = "timeout"
	ReasonOpponentDisconnected Reason = "opponent_disconnected"
)

// Client is a participant's connection as the coordinator sees it. The
// transport layer's websocket connection implements it; tests use fakes.
type Client interface {
	ConnectionID() uuid.UUID
	Username() string
	Send(msg messages.OutboundMessage)
}

// Session is one active two-player game. All mutation goes through the
// Coordinator while holding mu; events for the same session never
// interleave.
type Session struct {
	ID uuid.UUID

	Board board.Board
	Turn  board.Color
	Check board.Color // side currently in check, or None

	White Client // nil until the side is filled
	Black Client

	WhiteTimeMs int64
	BlackTimeMs int64
	TimeControl int64 // initial budget per side in milliseconds

	LastEvent time.Time // last clock-affecting event

	mu sync.Mutex
}

func newSession(id uuid.UUID, budgetMs int64) *Session {
	return &Session{
		ID:          id,
		Board:       board.StartingPosition(),
		Turn:        board.White,
		WhiteTimeMs: budgetMs,
		BlackTimeMs: budgetMs,
		TimeControl: budgetMs,
	}
}

// sideOf resolves a connection to the side it occupies.
func (s *Session) sideOf(connID uuid.UUID) (board.Color, bool) {
	if s.White != nil && s.White.ConnectionID() == connID {
		return board.White, true
	}
	if s.Black != nil && s.Black.ConnectionID() == connID {
		return board.Black, true
	}
	return board.None, false
}

// remaining returns the stored budget of a side without charging elapsed
// time.
func (s *Session) remaining(side board.Color) int64 {
	if side == board.White {
		return s.WhiteTimeMs
	}
	return s.BlackTimeMs
}

// charge subtracts elapsed milliseconds from a side's budget.
func (s *Session) charge(side board.Color, elapsedMs int64) {
	if side == board.White {
		s.WhiteTimeMs -= elapsedMs
	} else {
		s.BlackTimeMs -= elapsedMs
	}
}

// clampClocks floors both budgets at zero for outbound state.
func (s *Session) clampClocks() {
	if s.WhiteTimeMs < 0 {
		s.WhiteTimeMs = 0
	}
	if s.BlackTimeMs < 0 {
		s.BlackTimeMs = 0
	}
}

// broadcast sends a message to every present participant.
func (s *Session) broadcast(msg messages.OutboundMessage) {
	if s.White != nil {
		s.White.Send(msg)
	}
	if s.Black != nil {
		s.Black.Send(msg)
	}
}

// Result is what the persistence sink receives when a session finishes.
type Result struct {
	SessionID  uuid.UUID
	White      string
	Black      string
	Winner     board.Color // None for a stalemate
	Reason     Reason
	FinishedAt time.Time
}
