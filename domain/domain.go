// Package domain contains the core entities of the messaging schema.
// Entities are plain values; persistence and generation live elsewhere.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ChatKind string

const (
	ChatDirect ChatKind = "dm"
	ChatGroup  ChatKind = "group"
)

type MemberRole string

const (
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"
)

type UserStatus string

const (
	StatusActive UserStatus = "active"
)

// User is created once by the generator and never mutated afterwards.
type User struct {
	ID           uuid.UUID
	Username     string // unique handle, lowercase-normalized
	DisplayName  string
	PasswordHash string
	Status       UserStatus
	CreatedAt    time.Time
}

// Chat is either a direct conversation (DMKey set, exactly two members)
// or a group conversation (Topic set, two or more members).
type Chat struct {
	ID        uuid.UUID
	Kind      ChatKind
	Topic     *string // group only
	DMKey     *string // direct only
	CreatedAt time.Time
}

// Membership records that a user participates in a chat.
// The (ChatID, UserID) pair is unique.
type Membership struct {
	ChatID   uuid.UUID
	UserID   uuid.UUID
	Role     MemberRole
	JoinedAt time.Time
}

type Message struct {
	ID        uuid.UUID
	ChatID    uuid.UUID
	SenderID  uuid.UUID
	Content   string
	CreatedAt time.Time
}

// NormalizeHandle lowercases and trims a username so uniqueness is
// case-insensitive across the whole dataset.
func NormalizeHandle(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
