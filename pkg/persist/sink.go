// Package persist stores finished game results. Persistence is
// best-effort: a failed save is logged and never retried or surfaced to
// players.
package persist

import (
	"context"

	"go.uber.org/zap"

	"github.com/blitzarena/chess-server/pkg/game"
)

// Sink accepts a finished session's result for durable storage.
type Sink interface {
	SaveResult(ctx context.Context, r game.Result) error
}

// LogSink records results to the log only. Used when no database is
// configured.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a log-only sink.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// SaveResult logs the result and always succeeds.
func (s *LogSink) SaveResult(_ context.Context, r game.Result) error {
	s.logger.Info("game result",
		zap.String("session_id", r.SessionID.String()),
		zap.String("white", r.White),
		zap.String("black", r.Black),
		zap.String("winner", string(r.Winner)),
		zap.String("reason", string(r.Reason)))
	return nil
}
