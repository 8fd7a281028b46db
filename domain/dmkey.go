package domain

import (
	"strings"

	"github.com/google/uuid"
)

// DMKeySeparator splits the two participant IDs inside a direct-chat key.
const DMKeySeparator = "::"

// DMKey derives the unique key of a direct chat from its two participants.
// The key is order-independent: the smaller UUID string first, then "::",
// then the larger one. Two users can therefore share at most one direct chat.
func DMKey(a, b uuid.UUID) string {
	lo, hi := a.String(), b.String()
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + DMKeySeparator + hi
}

// WellFormedDMKey reports whether key has the expected "<uuid>::<uuid>" shape
// with the two halves in ascending order.
func WellFormedDMKey(key string) bool {
	parts := strings.Split(key, DMKeySeparator)
	if len(parts) != 2 {
		return false
	}
	if _, err := uuid.Parse(parts[0]); err != nil {
		return false
	}
	if _, err := uuid.Parse(parts[1]); err != nil {
		return false
	}
	return parts[0] <= parts[1]
}
