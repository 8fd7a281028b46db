package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"chat-dblab/bench"
	"chat-dblab/domain"
	"chat-dblab/verify"
)

// Snapshot loads the full read model the verifier's checks run against.
// Read-only: four SELECTs, no locks beyond MVCC defaults.
func (s *Store) Snapshot(ctx context.Context) (*verify.Snapshot, error) {
	snap := &verify.Snapshot{}

	if err := s.selectRows(ctx,
		`SELECT id, username, display_name, password_hash, status, created_at FROM "user"`,
		func(rows pgx.Rows) error {
			var u domain.User
			var status string
			if err := rows.Scan(&u.ID, &u.Username, &u.DisplayName, &u.PasswordHash, &status, &u.CreatedAt); err != nil {
				return err
			}
			u.Status = domain.UserStatus(status)
			snap.Users = append(snap.Users, u)
			return nil
		}); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	if err := s.selectRows(ctx,
		`SELECT c.id, c.type, c.created_at, dm.dm_key, gc.topic
		   FROM chat c
		   LEFT JOIN direct_message dm ON c.id = dm.id
		   LEFT JOIN group_chat gc ON c.id = gc.id`,
		func(rows pgx.Rows) error {
			var c domain.Chat
			var kind string
			if err := rows.Scan(&c.ID, &kind, &c.CreatedAt, &c.DMKey, &c.Topic); err != nil {
				return err
			}
			c.Kind = domain.ChatKind(kind)
			snap.Chats = append(snap.Chats, c)
			return nil
		}); err != nil {
		return nil, fmt.Errorf("load chats: %w", err)
	}

	if err := s.selectRows(ctx,
		`SELECT chat_id, user_id, role, joined_at FROM membership`,
		func(rows pgx.Rows) error {
			var m domain.Membership
			var role string
			if err := rows.Scan(&m.ChatID, &m.UserID, &role, &m.JoinedAt); err != nil {
				return err
			}
			m.Role = domain.MemberRole(role)
			snap.Memberships = append(snap.Memberships, m)
			return nil
		}); err != nil {
		return nil, fmt.Errorf("load memberships: %w", err)
	}

	if err := s.selectRows(ctx,
		`SELECT id, chat_id, sender_id, content, created_at FROM message`,
		func(rows pgx.Rows) error {
			var m domain.Message
			if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.Content, &m.CreatedAt); err != nil {
				return err
			}
			snap.Messages = append(snap.Messages, m)
			return nil
		}); err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	return snap, nil
}

// Counts returns the current entity counts, used before a destructive
// re-population and in report headers.
func (s *Store) Counts(ctx context.Context) (users, chats, memberships, messages int, err error) {
	ctx, cancel := s.roundTrip(ctx)
	defer cancel()
	err = s.pool.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM "user"),
		       (SELECT COUNT(*) FROM chat),
		       (SELECT COUNT(*) FROM membership),
		       (SELECT COUNT(*) FROM message)
	`).Scan(&users, &chats, &memberships, &messages)
	return
}

// Subjects discovers the benchmark's parameter rows: the chat with the most
// messages and an arbitrary user. Missing rows leave the zero UUID so the
// catalogue still executes against an empty store.
func (s *Store) Subjects(ctx context.Context) (bench.Subjects, error) {
	ctx, cancel := s.roundTrip(ctx)
	defer cancel()

	var subjects bench.Subjects
	err := s.pool.QueryRow(ctx, `
		SELECT c.id FROM chat c
		  JOIN message m ON c.id = m.chat_id
		 GROUP BY c.id
		 ORDER BY COUNT(m.id) DESC
		 LIMIT 1
	`).Scan(&subjects.ChatID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return subjects, fmt.Errorf("busiest chat: %w", err)
	}

	err = s.pool.QueryRow(ctx, `SELECT id FROM "user" ORDER BY created_at LIMIT 1`).Scan(&subjects.UserID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return subjects, fmt.Errorf("sample user: %w", err)
	}
	return subjects, nil
}

func (s *Store) selectRows(ctx context.Context, sql string, scan func(pgx.Rows) error) error {
	ctx, cancel := s.roundTrip(ctx)
	defer cancel()

	rows, err := s.pool.Query(ctx, sql)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
