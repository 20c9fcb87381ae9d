package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blitzarena/chess-server/pkg/board"
)

// TimeoutFunc is invoked when a session's deadline timer fires without
// being superseded.
type TimeoutFunc func(sessionID uuid.UUID, side board.Color)

// Scheduler owns at most one pending deadline timer per session. Arm
// replaces any existing timer; Cancel clears it. A timer that was
// cancelled or replaced before it runs never reaches the handler: each
// armed timer carries a sequence number and a fired callback only
// proceeds while its entry is still current.
type Scheduler struct {
	mu        sync.Mutex
	timers    map[uuid.UUID]*deadline
	seq       uint64
	grace     time.Duration
	onTimeout TimeoutFunc
	logger    *zap.Logger
}

type deadline struct {
	seq   uint64
	side  board.Color
	timer *time.Timer
}

// NewScheduler creates a scheduler adding the given grace allowance to
// every armed duration. The grace absorbs network and delivery latency
// so a move arriving just under the wire is not raced by the timer.
func NewScheduler(grace time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		timers: make(map[uuid.UUID]*deadline),
		grace:  grace,
		logger: logger,
	}
}

// Bind sets the timeout handler. The coordinator binds itself after
// construction; the scheduler never fires before that.
func (sc *Scheduler) Bind(fn TimeoutFunc) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.onTimeout = fn
}

// Arm cancels any existing timer for the session and schedules a new one
// for remaining plus the grace allowance. A non-positive remaining fires
// the handler on its own goroutine right away.
func (sc *Scheduler) Arm(sessionID uuid.UUID, remaining time.Duration, side board.Color) {
	sc.mu.Lock()

	if prev, ok := sc.timers[sessionID]; ok {
		prev.timer.Stop()
		delete(sc.timers, sessionID)
	}

	fn := sc.onTimeout
	if remaining <= 0 {
		sc.mu.Unlock()
		if fn != nil {
			go fn(sessionID, side)
		}
		return
	}

	sc.seq++
	entry := &deadline{seq: sc.seq, side: side}
	seq := sc.seq
	entry.timer = time.AfterFunc(remaining+sc.grace, func() {
		sc.fire(sessionID, seq)
	})
	sc.timers[sessionID] = entry
	sc.mu.Unlock()
}

// Cancel removes any pending timer for the session; a no-op if none
// exists.
func (sc *Scheduler) Cancel(sessionID uuid.UUID) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if entry, ok := sc.timers[sessionID]; ok {
		entry.timer.Stop()
		delete(sc.timers, sessionID)
	}
}

// fire runs on the timer goroutine. It claims the entry under the lock;
// if the entry was replaced or cancelled in the meantime the claim fails
// and the handler is not called.
func (sc *Scheduler) fire(sessionID uuid.UUID, seq uint64) {
	sc.mu.Lock()
	entry, ok := sc.timers[sessionID]
	if !ok || entry.seq != seq {
		sc.mu.Unlock()
		return
	}
	delete(sc.timers, sessionID)
	side := entry.side
	fn := sc.onTimeout
	sc.mu.Unlock()

	sc.logger.Debug("deadline timer fired",
		zap.String("session_id", sessionID.String()),
		zap.String("side", string(side)))

	if fn != nil {
		fn(sessionID, side)
	}
}

// pending reports whether a timer is armed for the session.
func (sc *Scheduler) pending(sessionID uuid.UUID) bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	_, ok := sc.timers[sessionID]
	return ok
}
