package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"chat-dblab/seed"
)

// Flush commits one generation batch in a single transaction, inserting in
// dependency order: users, chats (with their subtype row), memberships,
// messages. In idempotent mode every statement is upsert-or-skip keyed by the
// stable identifiers, so replaying a deterministic dataset changes nothing.
func (s *Store) Flush(ctx context.Context, batch *seed.Batch, idempotent bool) error {
	ctx, cancel := s.roundTrip(ctx)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	onConflict := ""
	if idempotent {
		onConflict = " ON CONFLICT DO NOTHING"
	}

	b := &pgx.Batch{}
	for _, u := range batch.Users {
		b.Queue(`INSERT INTO "user"(id, username, display_name, password_hash, status, created_at)
		         VALUES($1,$2,$3,$4,$5,$6)`+onConflict,
			u.ID, u.Username, u.DisplayName, u.PasswordHash, string(u.Status), u.CreatedAt)
	}
	for _, c := range batch.Chats {
		b.Queue(`INSERT INTO chat(id, type, created_at) VALUES($1,$2,$3)`+onConflict,
			c.ID, string(c.Kind), c.CreatedAt)
		if c.DMKey != nil {
			b.Queue(`INSERT INTO direct_message(id, dm_key) VALUES($1,$2)`+onConflict, c.ID, *c.DMKey)
		}
		if c.Topic != nil {
			b.Queue(`INSERT INTO group_chat(id, topic) VALUES($1,$2)`+onConflict, c.ID, *c.Topic)
		}
	}
	for _, m := range batch.Memberships {
		b.Queue(`INSERT INTO membership(chat_id, user_id, role, joined_at) VALUES($1,$2,$3,$4)`+onConflict,
			m.ChatID, m.UserID, string(m.Role), m.JoinedAt)
	}
	for _, m := range batch.Messages {
		b.Queue(`INSERT INTO message(id, chat_id, sender_id, content, created_at)
		         VALUES($1,$2,$3,$4,$5)`+onConflict,
			m.ID, m.ChatID, m.SenderID, m.Content, m.CreatedAt)
	}

	results := tx.SendBatch(ctx, b)
	for i := 0; i < b.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("statement %d of %d: %w", i+1, b.Len(), err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
