package game

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blitzarena/chess-server/internal/messages"
	"github.com/blitzarena/chess-server/pkg/board"
	"github.com/blitzarena/chess-server/pkg/events"
	"github.com/blitzarena/chess-server/pkg/rules"
)

// Coordinator is the sole authority for mutating sessions. It enforces
// turn ownership, delegates legality to the rules oracle, charges clocks,
// detects terminal conditions and emits state to participants. Events for
// one session serialize on the session mutex; cross-session events run
// concurrently.
type Coordinator struct {
	store     *Store
	queue     *Queue
	timers    *Scheduler
	oracle    rules.Oracle
	publisher *events.Publisher
	logger    *zap.Logger

	defaultBudgetMs int64 // budget per side for matched games

	// Overridable for deterministic tests.
	now  func() time.Time
	draw func() int
}

// NewCoordinator wires the coordinator to its collaborators and binds it
// as the scheduler's timeout handler. The transport layer is expected to
// call HandleDisconnect before processing any later message for the same
// connection.
func NewCoordinator(
	store *Store,
	queue *Queue,
	timers *Scheduler,
	oracle rules.Oracle,
	publisher *events.Publisher,
	logger *zap.Logger,
	defaultTimeControlMinutes int,
) *Coordinator {
	c := &Coordinator{
		store:           store,
		queue:           queue,
		timers:          timers,
		oracle:          oracle,
		publisher:       publisher,
		logger:          logger,
		defaultBudgetMs: int64(defaultTimeControlMinutes) * 60_000,
		now:             time.Now,
		draw:            func() int { return rand.IntN(2) },
	}

	timers.Bind(c.HandleTimeout)

	return c
}

// CreateSession allocates a session with the creator holding white. The
// deadline timer does not start until the second side is present.
func (c *Coordinator) CreateSession(creator Client, timeControlMinutes int) (*Session, error) {
	if creator.Username() == "" {
		return nil, ErrUnauthenticated
	}

	budget := int64(timeControlMinutes) * 60_000
	if timeControlMinutes <= 0 {
		budget = c.defaultBudgetMs
	}

	s := newSession(uuid.New(), budget)
	s.White = creator
	c.store.Put(s)

	c.logger.Info("session created",
		zap.String("session_id", s.ID.String()),
		zap.String("creator", creator.Username()),
		zap.Int64("budget_ms", budget))

	creator.Send(messages.OutboundMessage{
		Event: messages.EventSessionCreated,
		Payload: messages.SessionCreatedPayload{
			SessionID:   s.ID.String(),
			WhiteTimeMs: s.WhiteTimeMs,
			BlackTimeMs: s.BlackTimeMs,
		},
	})

	return s, nil
}

// JoinSession fills the remaining side of an open session, broadcasts the
// full state to both participants and starts the deadline timer for the
// side to move.
func (c *Coordinator) JoinSession(sessionID uuid.UUID, joiner Client) error {
	if joiner.Username() == "" {
		return ErrUnauthenticated
	}

	s, ok := c.store.Get(sessionID)
	if !ok {
		return ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The session may have been finalized between the lookup and the lock.
	if !c.store.Contains(sessionID) {
		return ErrNotFound
	}

	if _, occupied := s.sideOf(joiner.ConnectionID()); occupied {
		return ErrAlreadyJoined
	}
	if s.White != nil && s.Black != nil {
		return ErrFull
	}

	var side board.Color
	if s.White == nil {
		s.White = joiner
		side = board.White
	} else {
		s.Black = joiner
		side = board.Black
	}

	s.LastEvent = c.now()

	c.logger.Info("session joined",
		zap.String("session_id", s.ID.String()),
		zap.String("joiner", joiner.Username()),
		zap.String("side", string(side)))

	joiner.Send(messages.OutboundMessage{
		Event:   messages.EventSessionJoined,
		Payload: c.joinedPayload(s, side),
	})
	s.broadcast(c.stateMessage(s))

	c.timers.Arm(s.ID, time.Duration(s.remaining(s.Turn))*time.Millisecond, s.Turn)
	return nil
}

// RequestMatch enqueues the connection and pairs the two oldest waiters
// as soon as the queue holds two. Re-requesting while queued is a no-op
// beyond re-acknowledging the search.
func (c *Coordinator) RequestMatch(client Client) error {
	if client.Username() == "" {
		return ErrUnauthenticated
	}

	fresh := c.queue.Enqueue(client)
	client.Send(messages.OutboundMessage{
		Event:   messages.EventMatchSearching,
		Payload: struct{}{},
	})
	if !fresh {
		return nil
	}

	if a, b, ok := c.queue.PopPair(); ok {
		c.pair(a, b)
	}
	return nil
}

// CancelMatchRequest removes the connection from the queue if present;
// idempotent otherwise.
func (c *Coordinator) CancelMatchRequest(client Client) {
	if c.queue.Remove(client.ConnectionID()) {
		c.logger.Info("match request cancelled",
			zap.String("connection_id", client.ConnectionID().String()))
	}
}

// pair creates a session for two freshly matched clients with sides drawn
// 50/50, fills both sides and starts white's deadline timer.
func (c *Coordinator) pair(a, b Client) {
	white, black := a, b
	if c.draw() == 1 {
		white, black = b, a
	}

	s := newSession(uuid.New(), c.defaultBudgetMs)
	s.White = white
	s.Black = black
	s.LastEvent = c.now()
	c.store.Put(s)

	c.logger.Info("match paired",
		zap.String("session_id", s.ID.String()),
		zap.String("white", white.Username()),
		zap.String("black", black.Username()))

	white.Send(messages.OutboundMessage{
		Event:   messages.EventMatchJoined,
		Payload: c.joinedPayload(s, board.White),
	})
	black.Send(messages.OutboundMessage{
		Event:   messages.EventMatchJoined,
		Payload: c.joinedPayload(s, board.Black),
	})

	c.timers.Arm(s.ID, time.Duration(s.WhiteTimeMs)*time.Millisecond, board.White)
}

// SubmitMove validates and applies a move for the session's side to move.
func (c *Coordinator) SubmitMove(sessionID uuid.UUID, mover Client, from, to board.Square) error {
	s, ok := c.store.Get(sessionID)
	if !ok {
		return ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !c.store.Contains(sessionID) {
		return ErrNotFound
	}

	side, ok := s.sideOf(mover.ConnectionID())
	if !ok || side != s.Turn {
		return ErrTurnViolation
	}
	if s.White == nil || s.Black == nil {
		// No opponent yet, the game has not started.
		return ErrTurnViolation
	}

	if !c.oracle.IsLegal(s.Board, from, to, side) {
		return ErrInvalidMove
	}

	// A move that is reachable but leaves the mover's own king attacked
	// is illegal.
	next := s.Board.Apply(from, to)
	if c.oracle.IsInCheck(next, side, c.oracle.IsLegal) {
		return ErrInvalidMove
	}

	now := c.now()
	elapsed := now.Sub(s.LastEvent).Milliseconds()
	s.charge(side, elapsed)

	// Timeout discovered on arrival: the clock ran out before this move
	// landed, so the move does not apply.
	if s.WhiteTimeMs <= 0 || s.BlackTimeMs <= 0 {
		loser := board.White
		if s.BlackTimeMs <= 0 {
			loser = board.Black
		}
		c.finalizeLocked(s, loser.Opp(), ReasonTimeout)
		return nil
	}

	s.Board = next
	s.Turn = side.Opp()
	s.LastEvent = now
	c.timers.Arm(s.ID, time.Duration(s.remaining(s.Turn))*time.Millisecond, s.Turn)

	s.Check = board.None
	if c.oracle.IsInCheck(s.Board, s.Turn, c.oracle.IsLegal) {
		s.Check = s.Turn
	}

	c.logger.Debug("move applied",
		zap.String("session_id", s.ID.String()),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
		zap.String("new_turn", string(s.Turn)))

	s.broadcast(c.stateMessage(s))

	if !c.oracle.HasAnyLegalMove(s.Board, s.Turn, c.oracle.IsLegal) {
		if s.Check == s.Turn {
			c.finalizeLocked(s, side, ReasonCheckmate)
		} else {
			c.finalizeLocked(s, board.None, ReasonStalemate)
		}
	}

	return nil
}

// HandleTimeout is invoked by the scheduler when a deadline fires without
// being superseded. A stale firing for a side that has since moved is
// ignored.
func (c *Coordinator) HandleTimeout(sessionID uuid.UUID, side board.Color) {
	s, ok := c.store.Get(sessionID)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !c.store.Contains(sessionID) {
		return
	}
	if s.Turn != side {
		return
	}

	elapsed := c.now().Sub(s.LastEvent).Milliseconds()
	s.charge(side, elapsed)
	s.LastEvent = c.now()

	c.finalizeLocked(s, side.Opp(), ReasonTimeout)
}

// HandleDisconnect removes a waiting connection from the matchmaking
// queue, or finalizes the active session the connection participates in
// with the other side as winner.
func (c *Coordinator) HandleDisconnect(connID uuid.UUID) {
	if c.queue.Remove(connID) {
		c.logger.Info("queued connection disconnected",
			zap.String("connection_id", connID.String()))
		return
	}

	s, ok := c.store.FindByClient(connID)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !c.store.Contains(s.ID) {
		return
	}
	side, ok := s.sideOf(connID)
	if !ok {
		return
	}

	c.finalizeLocked(s, side.Opp(), ReasonOpponentDisconnected)
}

// finalizeLocked runs the shared terminal path: evict from the store
// (the atomic once-guard), cancel the timer, broadcast the terminal
// event and hand the result to the persistence sink via the event bus.
// Must be called with s.mu held.
func (c *Coordinator) finalizeLocked(s *Session, winner board.Color, reason Reason) {
	if !c.store.Remove(s.ID) {
		return
	}

	c.timers.Cancel(s.ID)
	s.clampClocks()

	c.logger.Info("session finished",
		zap.String("session_id", s.ID.String()),
		zap.String("winner", string(winner)),
		zap.String("reason", string(reason)))

	s.broadcast(messages.OutboundMessage{
		Event: messages.EventSessionOver,
		Payload: messages.SessionOverPayload{
			SessionID: s.ID.String(),
			Winner:    string(winner),
			Reason:    string(reason),
		},
	})

	result := Result{
		SessionID:  s.ID,
		Winner:     winner,
		Reason:     reason,
		FinishedAt: c.now(),
	}
	if s.White != nil {
		result.White = s.White.Username()
	}
	if s.Black != nil {
		result.Black = s.Black.Username()
	}

	c.publisher.Publish(events.Event{
		Type:      events.EventSessionFinished,
		SessionID: s.ID.String(),
		Payload:   result,
	})
}

func (c *Coordinator) joinedPayload(s *Session, side board.Color) messages.SessionJoinedPayload {
	return messages.SessionJoinedPayload{
		SessionID:   s.ID.String(),
		Side:        string(side),
		Board:       s.Board,
		WhiteTimeMs: s.WhiteTimeMs,
		BlackTimeMs: s.BlackTimeMs,
	}
}

func (c *Coordinator) stateMessage(s *Session) messages.OutboundMessage {
	return messages.OutboundMessage{
		Event: messages.EventSessionState,
		Payload: messages.SessionStatePayload{
			SessionID:   s.ID.String(),
			Board:       s.Board,
			Turn:        string(s.Turn),
			Check:       string(s.Check),
			WhiteTimeMs: s.WhiteTimeMs,
			BlackTimeMs: s.BlackTimeMs,
			LastEventMs: s.LastEvent.UnixMilli(),
		},
	}
}
