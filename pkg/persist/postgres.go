package persist

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/blitzarena/chess-server/pkg/game"
)

// PostgresSink writes finished games to a Postgres table.
type PostgresSink struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresSink opens and pings the database.
func NewPostgresSink(dsn string, logger *zap.Logger) (*PostgresSink, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("connected to database")
	return &PostgresSink{db: db, logger: logger}, nil
}

// EnsureSchema creates the games table if it does not exist.
func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS games (
			id           UUID PRIMARY KEY,
			white_player TEXT NOT NULL,
			black_player TEXT NOT NULL,
			winner       TEXT NOT NULL,
			reason       TEXT NOT NULL,
			finished_at  TIMESTAMPTZ NOT NULL
		)`)
	return err
}

// SaveResult inserts the finished game.
func (s *PostgresSink) SaveResult(ctx context.Context, r game.Result) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO games (id, white_player, black_player, winner, reason, finished_at) VALUES ($1, $2, $3, $4, $5, $6)",
		r.SessionID, r.White, r.Black, string(r.Winner), string(r.Reason), r.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert game result: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *PostgresSink) Close() error {
	return s.db.Close()
}
