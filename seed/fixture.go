package seed

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"chat-dblab/domain"
	"chat-dblab/fixtures"
)

// Offsets mirroring the fixture timeline: chats exist 150 minutes before the
// run's base time, members joined 140 minutes before, users signed up 30 days
// before. Message times are base time plus each fixture's own offset.
const (
	fixtureUserAge        = 30 * 24 * time.Hour
	fixtureChatLead       = 150 * time.Minute
	fixtureMembershipLead = 140 * time.Minute
)

// FixtureStrategy replays a static catalogue. Every identifier derives from a
// stable logical name, so two runs against a clean store produce byte-identical
// entity sets and a re-run over existing output changes nothing.
type FixtureStrategy struct {
	set          fixtures.Set
	passwordHash string
	base         time.Time
}

// NewFixtureStrategy builds the deterministic strategy. base anchors the
// timeline (normally time.Now, injected for tests); passwordHash is the one
// bcrypt hash shared by all fixture users.
func NewFixtureStrategy(set fixtures.Set, passwordHash string, base time.Time) *FixtureStrategy {
	return &FixtureStrategy{set: set, passwordHash: passwordHash, base: base}
}

func (s *FixtureStrategy) Name() string        { return "fixture" }
func (s *FixtureStrategy) Deterministic() bool { return true }

func (s *FixtureStrategy) Generate(ctx context.Context, out Emitter) error {
	users := make(map[string]domain.User, len(s.set.Users))
	for _, fu := range s.set.Users {
		handle := domain.NormalizeHandle(fu.Username)
		u := domain.User{
			ID:           domain.DeterministicUUID("user_" + handle),
			Username:     handle,
			DisplayName:  fu.DisplayName,
			PasswordHash: s.passwordHash,
			Status:       domain.StatusActive,
			CreatedAt:    s.base.Add(-fixtureUserAge),
		}
		if err := out.User(u); err != nil {
			return err
		}
		users[handle] = u
	}

	for _, conv := range s.set.Conversations {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.conversation(conv, users, out); err != nil {
			return err
		}
	}
	return nil
}

func (s *FixtureStrategy) conversation(conv fixtures.Conversation, users map[string]domain.User, out Emitter) error {
	chatSeed := conversationSeed(conv)
	chat := domain.Chat{
		ID:        domain.DeterministicUUID(chatSeed),
		CreatedAt: s.base.Add(-fixtureChatLead),
	}
	switch conv.Type {
	case "dm":
		a := users[domain.NormalizeHandle(conv.Participants[0])]
		b := users[domain.NormalizeHandle(conv.Participants[1])]
		chat.Kind = domain.ChatDirect
		chat.DMKey = lo.ToPtr(domain.DMKey(a.ID, b.ID))
	case "group":
		chat.Kind = domain.ChatGroup
		chat.Topic = lo.ToPtr(conv.Topic)
	default:
		return fmt.Errorf("conversation type %q", conv.Type)
	}
	if err := out.Chat(chat); err != nil {
		return err
	}

	for i, name := range conv.Participants {
		role := domain.RoleMember
		// First participant of a group owns it.
		if chat.Kind == domain.ChatGroup && i == 0 {
			role = domain.RoleAdmin
		}
		m := domain.Membership{
			ChatID:   chat.ID,
			UserID:   users[domain.NormalizeHandle(name)].ID,
			Role:     role,
			JoinedAt: s.base.Add(-fixtureMembershipLead),
		}
		if err := out.Membership(m); err != nil {
			return err
		}
	}

	for i, fm := range conv.Messages {
		sender := users[domain.NormalizeHandle(fm.Sender)]
		msg := domain.Message{
			ID:        domain.DeterministicUUID(fmt.Sprintf("msg_%s_%d_%s", chatSeed, i, sender.Username)),
			ChatID:    chat.ID,
			SenderID:  sender.ID,
			Content:   fm.Content,
			CreatedAt: s.base.Add(time.Duration(fm.OffsetMinutes) * time.Minute),
		}
		if err := out.Message(msg); err != nil {
			return err
		}
	}
	return nil
}

// conversationSeed names a conversation stably: direct chats by their sorted
// participant pair, groups by topic.
func conversationSeed(conv fixtures.Conversation) string {
	if conv.Type == "dm" {
		names := []string{
			domain.NormalizeHandle(conv.Participants[0]),
			domain.NormalizeHandle(conv.Participants[1]),
		}
		sort.Strings(names)
		return fmt.Sprintf("dm_%s_%s", names[0], names[1])
	}
	return "group_" + conv.Topic
}
