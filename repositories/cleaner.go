package repositories

import (
	"context"
	"fmt"
)

// wipeOrder deletes child tables before their parents so foreign keys never
// block the wipe.
var wipeOrder = []string{
	"message",
	"membership",
	"group_chat",
	"direct_message",
	"chat",
	`"user"`,
}

// Wipe removes all generated data in reverse dependency order, one
// transaction for the whole wipe.
func (s *Store) Wipe(ctx context.Context) error {
	ctx, cancel := s.roundTrip(ctx)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, table := range wipeOrder {
		tag, err := tx.Exec(ctx, "DELETE FROM "+table)
		if err != nil {
			return fmt.Errorf("wipe %s: %w", table, err)
		}
		s.log.Info("table cleared", "table", table, "rows", tag.RowsAffected())
	}
	return tx.Commit(ctx)
}
