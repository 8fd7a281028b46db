package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"chat-dblab/retry"
)

// Report summarizes one generation run: what got committed and how fast.
type Report struct {
	Strategy    string        `json:"strategy"`
	Users       int           `json:"users"`
	Chats       int           `json:"chats"`
	Memberships int           `json:"memberships"`
	Messages    int           `json:"messages"`
	Batches     int           `json:"batches"`
	Duration    time.Duration `json:"duration_ns"`
}

func (r Report) Total() int {
	return r.Users + r.Chats + r.Memberships + r.Messages
}

func (r Report) EntitiesPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Total()) / r.Duration.Seconds()
}

// Runner drives a strategy through batched, retried store writes.
type Runner struct {
	flusher   Flusher
	policy    retry.Policy
	batchSize int
	log       *slog.Logger
}

func NewRunner(flusher Flusher, policy retry.Policy, batchSize int, log *slog.Logger) *Runner {
	return &Runner{flusher: flusher, policy: policy, batchSize: batchSize, log: log}
}

// Run executes one generation run. On failure the report still carries the
// progress committed before the failing batch; the error names the batch and
// its cause. A batch is exactly one store transaction, so cancellation between
// batches never leaves a half-committed batch behind.
func (r *Runner) Run(ctx context.Context, strategy Strategy) (Report, error) {
	if r.batchSize < 1 {
		return Report{}, fmt.Errorf("batch size must be positive, got %d", r.batchSize)
	}

	start := time.Now()
	flusher := &retryingFlusher{inner: r.flusher, policy: r.policy}
	b := newBatcher(ctx, flusher, r.batchSize, strategy.Deterministic(), func(p Progress) {
		r.log.Info("batch committed",
			"batch", p.Batches,
			"users", p.Users,
			"chats", p.Chats,
			"memberships", p.Memberships,
			"messages", p.Messages,
		)
	})

	report := func() Report {
		p := b.Committed()
		return Report{
			Strategy:    strategy.Name(),
			Users:       p.Users,
			Chats:       p.Chats,
			Memberships: p.Memberships,
			Messages:    p.Messages,
			Batches:     p.Batches,
			Duration:    time.Since(start),
		}
	}

	r.log.Info("generation started", "strategy", strategy.Name(), "batch_size", r.batchSize)
	if err := strategy.Generate(ctx, b); err != nil {
		return report(), fmt.Errorf("strategy %s: %w", strategy.Name(), err)
	}
	if err := b.Close(); err != nil {
		return report(), fmt.Errorf("strategy %s: %w", strategy.Name(), err)
	}

	rep := report()
	r.log.Info("generation finished",
		"strategy", rep.Strategy,
		"entities", rep.Total(),
		"batches", rep.Batches,
		"duration", rep.Duration,
	)
	return rep, nil
}

// retryingFlusher retries each batch as one unit: constraint violations and
// timeouts are assumed transient until the policy gives up.
type retryingFlusher struct {
	inner  Flusher
	policy retry.Policy
}

func (f *retryingFlusher) Flush(ctx context.Context, batch *Batch, idempotent bool) error {
	return f.policy.Do(ctx, func(ctx context.Context) error {
		return f.inner.Flush(ctx, batch, idempotent)
	})
}
