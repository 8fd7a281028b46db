package seed

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"chat-dblab/domain"
)

func smallScaleConfig() ScaleConfig {
	cfg := DefaultScaleConfig()
	cfg.Users = 20
	cfg.GroupChats = 5
	cfg.DirectChats = 10
	cfg.Messages = 300
	cfg.SpanDays = 30
	cfg.GroupSizeMin = 3
	cfg.GroupSizeMax = 6
	cfg.MaxUserAgeDays = 60
	cfg.MaxChatAgeDays = 30
	cfg.Seed = 42
	return cfg
}

func generateScale(t *testing.T, cfg ScaleConfig) *collector {
	t.Helper()
	strategy, err := NewScaleStrategy(cfg, "hash", testBase)
	require.NoError(t, err)
	out := &collector{}
	require.NoError(t, strategy.Generate(context.Background(), out))
	return out
}

func TestScaleStrategy_Respects_The_Configured_Shape(t *testing.T) {
	req := require.New(t)
	cfg := smallScaleConfig()
	out := generateScale(t, cfg)

	req.Len(out.users, cfg.Users)
	req.Len(out.chats, cfg.GroupChats+cfg.DirectChats)
	// Some message slots may land on chats without active members.
	req.LessOrEqual(len(out.messages), cfg.Messages)
	req.NotEmpty(out.messages)

	members := make(map[uuid.UUID]int)
	for _, m := range out.memberships {
		members[m.ChatID]++
	}
	for _, c := range out.chats {
		switch c.Kind {
		case domain.ChatDirect:
			req.Equal(2, members[c.ID])
		case domain.ChatGroup:
			req.GreaterOrEqual(members[c.ID], cfg.GroupSizeMin)
			req.LessOrEqual(members[c.ID], cfg.GroupSizeMax)
		default:
			t.Fatalf("unexpected chat kind %q", c.Kind)
		}
	}
}

func TestScaleStrategy_Keeps_Identifiers_Unique(t *testing.T) {
	req := require.New(t)
	out := generateScale(t, smallScaleConfig())

	usernames := lo.Map(out.users, func(u domain.User, _ int) string { return u.Username })
	req.Len(lo.Uniq(usernames), len(usernames))

	keys := make(map[string]struct{})
	for _, c := range out.chats {
		if c.Kind != domain.ChatDirect {
			continue
		}
		key := lo.FromPtr(c.DMKey)
		req.True(domain.WellFormedDMKey(key))
		_, dup := keys[key]
		req.False(dup, "dm key %s", key)
		keys[key] = struct{}{}
	}

	pairs := make(map[string]struct{})
	for _, m := range out.memberships {
		key := m.ChatID.String() + "/" + m.UserID.String()
		_, dup := pairs[key]
		req.False(dup, "membership %s", key)
		pairs[key] = struct{}{}
	}
}

func TestScaleStrategy_Senders_Are_Members_At_Send_Time(t *testing.T) {
	req := require.New(t)
	out := generateScale(t, smallScaleConfig())

	joined := make(map[string]time.Time)
	for _, m := range out.memberships {
		joined[m.ChatID.String()+"/"+m.UserID.String()] = m.JoinedAt
	}
	for _, msg := range out.messages {
		joinedAt, ok := joined[msg.ChatID.String()+"/"+msg.SenderID.String()]
		req.True(ok, "message %s sent by a non-member", msg.ID)
		req.False(msg.CreatedAt.Before(joinedAt), "message %s predates the sender's membership", msg.ID)
		req.False(msg.CreatedAt.After(testBase))
	}
}

func TestScaleStrategy_Same_Seed_Same_Output(t *testing.T) {
	req := require.New(t)
	cfg := smallScaleConfig()

	first := generateScale(t, cfg)
	second := generateScale(t, cfg)
	req.Equal(first.users, second.users)
	req.Equal(first.chats, second.chats)
	req.Equal(first.memberships, second.memberships)
	req.Equal(first.messages, second.messages)

	cfg.Seed = 43
	third := generateScale(t, cfg)
	req.NotEqual(first.users, third.users)
}

func TestScaleStrategy_Zero_Messages(t *testing.T) {
	req := require.New(t)
	cfg := smallScaleConfig()
	cfg.Messages = 0

	out := generateScale(t, cfg)
	req.Empty(out.messages)
	req.Len(out.chats, cfg.GroupChats+cfg.DirectChats)
}

func TestScaleConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ScaleConfig)
		want   string
	}{
		{"zero users", func(c *ScaleConfig) { c.Users = 0 }, "Users"},
		{"group size below two", func(c *ScaleConfig) { c.GroupSizeMin = 1 }, "GroupSizeMin"},
		{"max below min", func(c *ScaleConfig) { c.GroupSizeMax = 2 }, "group size max"},
		{"hours inverted", func(c *ScaleConfig) { c.BusinessHourStart = 18; c.BusinessHourEnd = 9 }, "business hours"},
		{"ratio above one", func(c *ScaleConfig) { c.BusinessRatio = 1.5 }, "BusinessRatio"},
		{"too few users for groups", func(c *ScaleConfig) { c.Users = 2 }, "cannot fill groups"},
		{
			"messages without chats",
			func(c *ScaleConfig) { c.GroupChats = 0; c.DirectChats = 0 },
			"no chats to hold them",
		},
		{
			"more direct chats than pairs",
			func(c *ScaleConfig) { c.Users = 5; c.GroupChats = 0; c.DirectChats = 11 },
			"distinct pairs",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultScaleConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}

	require.NoError(t, DefaultScaleConfig().Validate())
}
