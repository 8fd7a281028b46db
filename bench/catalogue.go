// Package bench measures query latency against the populated store and flags
// regressions against declared thresholds. The query catalogue is data, not
// code: adding a query means adding an entry, never touching the harness.
package bench

import (
	"time"

	"github.com/google/uuid"
)

// Subjects are the concrete rows the catalogue parameterizes over: the
// busiest chat and a sample user, discovered once before the run. Against an
// empty store the zero value is used and every query still executes, just
// over zero rows.
type Subjects struct {
	ChatID uuid.UUID
	UserID uuid.UUID
}

// Query is one catalogue entry: the operation shape as parameterized SQL, the
// latency budget, and how to resolve its arguments from the subjects.
type Query struct {
	Name        string
	Description string
	SQL         string
	Threshold   time.Duration
	Args        func(Subjects) []any
}

// Page sizes and search shapes of the representative workload.
const (
	timelineLimit   = 50
	timelineOffset  = 100
	searchLimit     = 20
	activityLimit   = 100
	topChatsLimit   = 20
	usernamePattern = "a%"
	contentPattern  = "%the%"
)

// Catalogue returns the fixed set of representative read queries.
func Catalogue() []Query {
	return []Query{
		{
			Name:        "timeline",
			Description: "last page of a chat's timeline, newest first",
			SQL: `SELECT m.id, m.content, m.created_at, u.username
			        FROM message m
			        JOIN "user" u ON m.sender_id = u.id
			       WHERE m.chat_id = $1
			       ORDER BY m.created_at DESC
			       LIMIT $2`,
			Threshold: 10 * time.Millisecond,
			Args:      func(s Subjects) []any { return []any{s.ChatID, timelineLimit} },
		},
		{
			Name:        "timeline-offset",
			Description: "timeline page deeper into history",
			SQL: `SELECT m.id, m.content, m.created_at, u.username
			        FROM message m
			        JOIN "user" u ON m.sender_id = u.id
			       WHERE m.chat_id = $1
			       ORDER BY m.created_at DESC
			       LIMIT $2 OFFSET $3`,
			Threshold: 10 * time.Millisecond,
			Args:      func(s Subjects) []any { return []any{s.ChatID, timelineLimit, timelineOffset} },
		},
		{
			Name:        "message-search",
			Description: "substring search inside one chat",
			SQL: `SELECT m.id, m.content, m.created_at
			        FROM message m
			       WHERE m.chat_id = $1
			         AND m.content ILIKE $2
			       ORDER BY m.created_at DESC
			       LIMIT $3`,
			Threshold: 25 * time.Millisecond,
			Args:      func(s Subjects) []any { return []any{s.ChatID, contentPattern, searchLimit} },
		},
		{
			Name:        "user-search",
			Description: "username prefix lookup",
			SQL: `SELECT id, username, created_at
			        FROM "user"
			       WHERE username ILIKE $1
			       ORDER BY username
			       LIMIT $2`,
			Threshold: 5 * time.Millisecond,
			Args:      func(s Subjects) []any { return []any{usernamePattern, searchLimit} },
		},
		{
			Name:        "user-chats",
			Description: "all chats a user belongs to",
			SQL: `SELECT c.id, c.type, COALESCE(gc.topic, dm.dm_key, 'unknown') AS name
			        FROM membership m
			        JOIN chat c ON m.chat_id = c.id
			        LEFT JOIN group_chat gc ON c.id = gc.id
			        LEFT JOIN direct_message dm ON c.id = dm.id
			       WHERE m.user_id = $1
			       ORDER BY c.created_at DESC`,
			Threshold: 10 * time.Millisecond,
			Args:      func(s Subjects) []any { return []any{s.UserID} },
		},
		{
			Name:        "chat-members",
			Description: "membership listing of one chat",
			SQL: `SELECT u.id, u.username, m.role, m.joined_at
			        FROM membership m
			        JOIN "user" u ON m.user_id = u.id
			       WHERE m.chat_id = $1
			       ORDER BY m.joined_at`,
			Threshold: 10 * time.Millisecond,
			Args:      func(s Subjects) []any { return []any{s.ChatID} },
		},
		{
			Name:        "recent-activity",
			Description: "latest messages across all of a user's chats",
			SQL: `SELECT c.id, c.type, COALESCE(gc.topic, dm.dm_key, 'unknown') AS chat_name,
			             m.content, m.created_at, sender.username
			        FROM membership mem
			        JOIN chat c ON mem.chat_id = c.id
			        LEFT JOIN group_chat gc ON c.id = gc.id
			        LEFT JOIN direct_message dm ON c.id = dm.id
			        JOIN message m ON c.id = m.chat_id
			        JOIN "user" sender ON m.sender_id = sender.id
			       WHERE mem.user_id = $1
			       ORDER BY m.created_at DESC
			       LIMIT $2`,
			Threshold: 50 * time.Millisecond,
			Args:      func(s Subjects) []any { return []any{s.UserID, activityLimit} },
		},
		{
			Name:        "chat-message-counts",
			Description: "busiest chats by message count",
			SQL: `SELECT c.id, c.type, COALESCE(gc.topic, dm.dm_key, 'unknown') AS chat_name,
			             COUNT(m.id) AS message_count
			        FROM chat c
			        LEFT JOIN group_chat gc ON c.id = gc.id
			        LEFT JOIN direct_message dm ON c.id = dm.id
			        LEFT JOIN message m ON c.id = m.chat_id
			       GROUP BY c.id, c.type, gc.topic, dm.dm_key
			       ORDER BY message_count DESC
			       LIMIT $1`,
			Threshold: 50 * time.Millisecond,
			Args:      func(s Subjects) []any { return []any{topChatsLimit} },
		},
	}
}
