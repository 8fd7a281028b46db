package seed

import (
	"context"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"chat-dblab/domain"
	"chat-dblab/fixtures"
)

// collector implements Emitter in memory for strategy tests.
type collector struct {
	users       []domain.User
	chats       []domain.Chat
	memberships []domain.Membership
	messages    []domain.Message
}

func (c *collector) User(u domain.User) error             { c.users = append(c.users, u); return nil }
func (c *collector) Chat(ch domain.Chat) error            { c.chats = append(c.chats, ch); return nil }
func (c *collector) Membership(m domain.Membership) error { c.memberships = append(c.memberships, m); return nil }
func (c *collector) Message(m domain.Message) error       { c.messages = append(c.messages, m); return nil }

var testBase = time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)

func TestFixtureStrategy_Emits_Full_Catalogue(t *testing.T) {
	req := require.New(t)
	set, err := fixtures.Default()
	req.NoError(err)

	out := &collector{}
	strategy := NewFixtureStrategy(set, "hash", testBase)
	req.NoError(strategy.Generate(context.Background(), out))

	req.Len(out.users, 5)
	req.Len(out.chats, 4)
	req.Len(out.memberships, 10)
	req.Len(out.messages, 16)
}

func TestFixtureStrategy_Is_Deterministic(t *testing.T) {
	req := require.New(t)
	set, err := fixtures.Default()
	req.NoError(err)

	first, second := &collector{}, &collector{}
	req.NoError(NewFixtureStrategy(set, "hash", testBase).Generate(context.Background(), first))
	req.NoError(NewFixtureStrategy(set, "hash", testBase).Generate(context.Background(), second))

	req.Equal(first.users, second.users)
	req.Equal(first.chats, second.chats)
	req.Equal(first.memberships, second.memberships)
	req.Equal(first.messages, second.messages)
}

func TestFixtureStrategy_Derives_DM_Keys_From_Participants(t *testing.T) {
	req := require.New(t)
	set := fixtures.Set{
		Users: []fixtures.User{
			{Username: "alice", DisplayName: "Alice"},
			{Username: "bob", DisplayName: "Bob"},
		},
		Conversations: []fixtures.Conversation{
			{Type: "dm", Participants: []string{"bob", "alice"}},
		},
	}

	out := &collector{}
	req.NoError(NewFixtureStrategy(set, "hash", testBase).Generate(context.Background(), out))

	req.Len(out.chats, 1)
	chat := out.chats[0]
	req.Equal(domain.ChatDirect, chat.Kind)
	req.Nil(chat.Topic)

	a := domain.DeterministicUUID("user_alice")
	b := domain.DeterministicUUID("user_bob")
	req.Equal(domain.DMKey(a, b), lo.FromPtr(chat.DMKey))
	req.True(domain.WellFormedDMKey(lo.FromPtr(chat.DMKey)))
}

func TestFixtureStrategy_First_Group_Participant_Is_Admin(t *testing.T) {
	req := require.New(t)
	set, err := fixtures.Default()
	req.NoError(err)

	out := &collector{}
	req.NoError(NewFixtureStrategy(set, "hash", testBase).Generate(context.Background(), out))

	groups := lo.Filter(out.chats, func(c domain.Chat, _ int) bool { return c.Kind == domain.ChatGroup })
	req.NotEmpty(groups)
	for _, g := range groups {
		admins := 0
		for _, m := range out.memberships {
			if m.ChatID == g.ID && m.Role == domain.RoleAdmin {
				admins++
			}
		}
		req.Equal(1, admins, "group %s", lo.FromPtr(g.Topic))
	}
}

func TestFixtureStrategy_Anchors_The_Timeline(t *testing.T) {
	req := require.New(t)
	set := fixtures.Set{
		Users: []fixtures.User{
			{Username: "alice", DisplayName: "Alice"},
			{Username: "bob", DisplayName: "Bob"},
		},
		Conversations: []fixtures.Conversation{
			{Type: "dm", Participants: []string{"alice", "bob"},
				Messages: []fixtures.Message{
					{Sender: "alice", Content: "hi", OffsetMinutes: 0},
					{Sender: "bob", Content: "hello", OffsetMinutes: 7},
				}},
		},
	}

	out := &collector{}
	req.NoError(NewFixtureStrategy(set, "hash", testBase).Generate(context.Background(), out))

	req.Equal(testBase.AddDate(0, 0, -30), out.users[0].CreatedAt)
	req.Equal(testBase.Add(-150*time.Minute), out.chats[0].CreatedAt)
	req.Equal(testBase.Add(-140*time.Minute), out.memberships[0].JoinedAt)
	req.Equal(testBase, out.messages[0].CreatedAt)
	req.Equal(testBase.Add(7*time.Minute), out.messages[1].CreatedAt)
}
