// Package retry expresses bounded-attempts policies around transient store
// failures, so batch flushes and connection attempts share one implementation
// instead of hand-rolling loops per call site.
package retry

import (
	"context"
	"fmt"
	"time"

	apperrors "chat-dblab/errors"
)

// Policy describes how many times an operation may run and how long to wait
// between attempts. Backoff grows by Multiplier after each failure.
type Policy struct {
	MaxAttempts int
	Backoff     time.Duration
	Multiplier  float64
}

// DefaultPolicy matches the store round-trip expectations: three attempts,
// starting at 200ms and doubling.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, Backoff: 200 * time.Millisecond, Multiplier: 2}
}

// Do runs op until it succeeds, the attempts are exhausted, or ctx is done.
// The returned error wraps the last underlying cause.
func (p Policy) Do(ctx context.Context, op func(context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := p.Backoff

	var last error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		last = op(ctx)
		if last == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		if p.Multiplier > 1 {
			backoff = time.Duration(float64(backoff) * p.Multiplier)
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", apperrors.ErrRetriesExhausted, attempts, last)
}
