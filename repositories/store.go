// Package repositories is the pgx-backed store layer. It owns every SQL round
// trip: batched writes for the generator, snapshot reads for the verifier,
// timed execution for the benchmark harness, and the data wipe.
//
// Schema (assumed already migrated, roles already provisioned): "user", chat,
// direct_message, group_chat, membership, message.
package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"chat-dblab/retry"
)

// Connect opens a pool and verifies connectivity, retrying pings per policy.
func Connect(ctx context.Context, dsn string, policy retry.Policy) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pool: %w", err)
	}
	if err := policy.Do(ctx, pool.Ping); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

// Store wraps a pool with the per-round-trip timeout every operation honors.
type Store struct {
	pool    *pgxpool.Pool
	log     *slog.Logger
	timeout time.Duration
}

func NewStore(pool *pgxpool.Pool, log *slog.Logger, timeout time.Duration) *Store {
	return &Store{pool: pool, log: log, timeout: timeout}
}

func (s *Store) roundTrip(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}
