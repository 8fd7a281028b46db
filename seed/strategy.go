// Package seed generates synthetic datasets for the messaging schema.
// A Strategy decides WHAT to emit (fixed fixtures or sampled distributions);
// the Runner decides HOW it reaches the store (batching, retries, progress).
package seed

import (
	"context"

	"chat-dblab/domain"
)

// Emitter receives entities in dependency order: a strategy must emit a user
// before any membership referencing it, and a chat before its memberships and
// messages. The batcher behind the Emitter may flush at any point, so entities
// already emitted can be assumed committed or co-batched, never lost.
type Emitter interface {
	User(domain.User) error
	Chat(domain.Chat) error
	Membership(domain.Membership) error
	Message(domain.Message) error
}

// Strategy is one generation mode. Exactly two exist: FixtureStrategy
// (deterministic, idempotent) and ScaleStrategy (seeded pseudo-random).
type Strategy interface {
	Name() string
	// Deterministic reports whether re-running against a store that already
	// holds this dataset must not create duplicates. The runner switches the
	// store to upsert-or-skip writes when true.
	Deterministic() bool
	Generate(ctx context.Context, out Emitter) error
}
