package domain

import (
	"crypto/sha256"

	"github.com/google/uuid"
)

// DeterministicUUID maps a logical seed string ("user_alice", "group_Random"...)
// to a stable identifier: the first 16 bytes of its SHA-256 digest.
// Re-running a deterministic population therefore produces byte-identical IDs,
// which is what makes upsert-or-skip idempotency possible.
func DeterministicUUID(seed string) uuid.UUID {
	sum := sha256.Sum256([]byte(seed))
	id, _ := uuid.FromBytes(sum[:16])
	return id
}
