package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"chat-dblab/domain"
	apperrors "chat-dblab/errors"
)

// ScaleStrategy samples a dataset of configured size and realistic shape from
// a seeded PRNG. Output is reproducible for a given seed and config but the
// strategy makes no idempotency promise: scale runs expect a clean store.
type ScaleStrategy struct {
	cfg          ScaleConfig
	passwordHash string
	now          time.Time
	rng          *rand.Rand

	// Run-scoped uniqueness registries. A fresh strategy value per run keeps
	// concurrent runs from sharing bookkeeping.
	usernames map[string]struct{}
	topics    map[string]struct{}
	pairs     map[string]struct{}
}

// NewScaleStrategy validates cfg and prepares a run-scoped sampler.
func NewScaleStrategy(cfg ScaleConfig, passwordHash string, now time.Time) (*ScaleStrategy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &ScaleStrategy{
		cfg:          cfg,
		passwordHash: passwordHash,
		now:          now,
		rng:          rand.New(rand.NewSource(cfg.Seed)),
		usernames:    make(map[string]struct{}, cfg.Users),
		topics:       make(map[string]struct{}, cfg.GroupChats),
		pairs:        make(map[string]struct{}, cfg.DirectChats),
	}, nil
}

func (s *ScaleStrategy) Name() string        { return "scale" }
func (s *ScaleStrategy) Deterministic() bool { return false }

// genMember and genChat are the transient working set: just enough structure
// to pick plausible senders and timestamps for messages later in the run.
type genMember struct {
	userID   uuid.UUID
	joinedAt time.Time
}

type genChat struct {
	id        uuid.UUID
	createdAt time.Time
	members   []genMember
}

func (s *ScaleStrategy) Generate(ctx context.Context, out Emitter) error {
	users, err := s.users(ctx, out)
	if err != nil {
		return err
	}

	var chats []genChat
	groups, err := s.groupChats(ctx, out, users)
	if err != nil {
		return err
	}
	chats = append(chats, groups...)

	dms, err := s.directChats(ctx, out, users)
	if err != nil {
		return err
	}
	chats = append(chats, dms...)

	return s.messages(ctx, out, chats, users)
}

func (s *ScaleStrategy) users(ctx context.Context, out Emitter) ([]domain.User, error) {
	users := make([]domain.User, 0, s.cfg.Users)
	for i := 0; i < s.cfg.Users; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		username := s.uniqueUsername()
		u := domain.User{
			ID:           domain.DeterministicUUID("large_user_" + username),
			Username:     username,
			DisplayName:  username,
			PasswordHash: s.passwordHash,
			Status:       domain.StatusActive,
			CreatedAt:    s.now.AddDate(0, 0, -(1 + s.rng.Intn(s.cfg.MaxUserAgeDays))),
		}
		if err := out.User(u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (s *ScaleStrategy) groupChats(ctx context.Context, out Emitter, users []domain.User) ([]genChat, error) {
	chats := make([]genChat, 0, s.cfg.GroupChats)
	for i := 0; i < s.cfg.GroupChats; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		topic := s.uniqueTopic()
		chat := domain.Chat{
			ID:        domain.DeterministicUUID("large_group_" + topic),
			Kind:      domain.ChatGroup,
			Topic:     lo.ToPtr(topic),
			CreatedAt: s.chatCreation(),
		}
		if err := out.Chat(chat); err != nil {
			return nil, err
		}

		size := s.cfg.GroupSizeMin
		if ceil := min(s.cfg.GroupSizeMax, len(users)); ceil > size {
			size += s.rng.Intn(ceil - size + 1)
		}
		g := genChat{id: chat.ID, createdAt: chat.CreatedAt}
		for j, idx := range s.rng.Perm(len(users))[:size] {
			role := domain.RoleMember
			// Founder is admin; the rest get a small promotion chance.
			if j == 0 || s.rng.Float64() < s.cfg.AdminPromotionChance {
				role = domain.RoleAdmin
			}
			joined := chat.CreatedAt.Add(time.Duration(s.rng.Intn(s.cfg.MaxJoinDelayMin+1)) * time.Minute)
			if joined.After(s.now) {
				joined = s.now
			}
			m := domain.Membership{
				ChatID:   chat.ID,
				UserID:   users[idx].ID,
				Role:     role,
				JoinedAt: joined,
			}
			if err := out.Membership(m); err != nil {
				return nil, err
			}
			g.members = append(g.members, genMember{userID: m.UserID, joinedAt: m.JoinedAt})
		}
		chats = append(chats, g)
	}
	return chats, nil
}

func (s *ScaleStrategy) directChats(ctx context.Context, out Emitter, users []domain.User) ([]genChat, error) {
	chats := make([]genChat, 0, s.cfg.DirectChats)
	// Bounded resampling: collisions get denser as the pair space fills up.
	attempts := 0
	maxAttempts := s.cfg.DirectChats * 20
	for len(chats) < s.cfg.DirectChats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if attempts >= maxAttempts {
			return nil, fmt.Errorf("%w: placed %d of %d direct chats",
				apperrors.ErrPairSpaceExhausted, len(chats), s.cfg.DirectChats)
		}
		attempts++

		i := s.rng.Intn(len(users))
		j := s.rng.Intn(len(users) - 1)
		if j >= i {
			j++
		}
		a, b := users[i], users[j]
		key := domain.DMKey(a.ID, b.ID)
		if _, taken := s.pairs[key]; taken {
			continue
		}
		s.pairs[key] = struct{}{}

		chat := domain.Chat{
			ID:        domain.DeterministicUUID("large_dm_" + key),
			Kind:      domain.ChatDirect,
			DMKey:     lo.ToPtr(key),
			CreatedAt: s.chatCreation(),
		}
		if err := out.Chat(chat); err != nil {
			return nil, err
		}
		g := genChat{id: chat.ID, createdAt: chat.CreatedAt}
		for _, u := range []domain.User{a, b} {
			m := domain.Membership{
				ChatID:   chat.ID,
				UserID:   u.ID,
				Role:     domain.RoleMember,
				JoinedAt: chat.CreatedAt,
			}
			if err := out.Membership(m); err != nil {
				return nil, err
			}
			g.members = append(g.members, genMember{userID: m.UserID, joinedAt: m.JoinedAt})
		}
		chats = append(chats, g)
	}
	return chats, nil
}

func (s *ScaleStrategy) messages(ctx context.Context, out Emitter, chats []genChat, users []domain.User) error {
	if s.cfg.Messages == 0 {
		return nil
	}

	active := make(map[uuid.UUID]struct{})
	for _, idx := range s.rng.Perm(len(users))[:activeCount(len(users), s.cfg.ActiveUserRatio)] {
		active[users[idx].ID] = struct{}{}
	}

	// Chats with more members attract more traffic: weight = members/2, min 1.
	var weighted []int
	for i, c := range chats {
		weight := max(1, len(c.members)/2)
		for w := 0; w < weight; w++ {
			weighted = append(weighted, i)
		}
	}

	model := TimeModel{
		Now:           s.now,
		Window:        time.Duration(s.cfg.SpanDays) * 24 * time.Hour,
		BusinessRatio: s.cfg.BusinessRatio,
		StartHour:     s.cfg.BusinessHourStart,
		EndHour:       s.cfg.BusinessHourEnd,
	}

	for i := 0; i < s.cfg.Messages; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		chat := chats[weighted[s.rng.Intn(len(weighted))]]
		sender, ok := s.pickSender(chat, active)
		if !ok {
			continue // no active member in this chat, drop the slot
		}
		msg := domain.Message{
			ID:        domain.DeterministicUUID(fmt.Sprintf("large_msg_%s_%d_%s", chat.id, i, sender.userID)),
			ChatID:    chat.id,
			SenderID:  sender.userID,
			Content:   messageTemplates[s.rng.Intn(len(messageTemplates))],
			CreatedAt: model.Sample(s.rng, sender.joinedAt),
		}
		if err := out.Message(msg); err != nil {
			return err
		}
	}
	return nil
}

func (s *ScaleStrategy) pickSender(chat genChat, active map[uuid.UUID]struct{}) (genMember, bool) {
	candidates := make([]genMember, 0, len(chat.members))
	for _, m := range chat.members {
		if _, ok := active[m.userID]; ok {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return genMember{}, false
	}
	return candidates[s.rng.Intn(len(candidates))], true
}

func (s *ScaleStrategy) chatCreation() time.Time {
	days := 1 + s.rng.Intn(s.cfg.MaxChatAgeDays)
	return s.now.AddDate(0, 0, -days).Add(time.Duration(s.rng.Intn(24*3600)) * time.Second)
}

func (s *ScaleStrategy) uniqueUsername() string {
	base := s.usernamePattern()
	name := base
	for counter := 1; ; counter++ {
		if _, taken := s.usernames[name]; !taken {
			break
		}
		name = fmt.Sprintf("%s%d", base, counter)
	}
	s.usernames[name] = struct{}{}
	return name
}

func (s *ScaleStrategy) usernamePattern() string {
	first := firstNames[s.rng.Intn(len(firstNames))]
	suffix := nameSuffixes[s.rng.Intn(len(nameSuffixes))]
	switch s.rng.Intn(5) {
	case 0:
		return first
	case 1:
		return fmt.Sprintf("%s%d", first, 10+s.rng.Intn(90))
	case 2:
		return first + "_" + suffix
	case 3:
		return first + suffix
	default:
		return suffix + "_" + first
	}
}

func (s *ScaleStrategy) uniqueTopic() string {
	base := s.topicPattern()
	topic := base
	for counter := 1; ; counter++ {
		if _, taken := s.topics[topic]; !taken {
			break
		}
		topic = fmt.Sprintf("%s %d", base, counter)
	}
	s.topics[topic] = struct{}{}
	return topic
}

func (s *ScaleStrategy) topicPattern() string {
	switch s.rng.Intn(5) {
	case 0:
		return projects[s.rng.Intn(len(projects))] + " " + teamTypes[s.rng.Intn(len(teamTypes))]
	case 1:
		return departments[s.rng.Intn(len(departments))] + " " + teamTypes[s.rng.Intn(len(teamTypes))]
	case 2:
		return casualGroups[s.rng.Intn(len(casualGroups))]
	case 3:
		return "Project " + projects[s.rng.Intn(len(projects))]
	default:
		return departments[s.rng.Intn(len(departments))] + " Discussion"
	}
}

func activeCount(users int, ratio float64) int {
	n := int(float64(users) * ratio)
	if n < 1 {
		n = 1
	}
	if n > users {
		n = users
	}
	return n
}
