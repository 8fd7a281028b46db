package verify

import (
	"fmt"

	"github.com/google/uuid"

	"chat-dblab/domain"
)

// CheckRowCounts verifies each entity count against its expected bounds.
func CheckRowCounts(snap *Snapshot, exp Expectations) Result {
	type countLine struct {
		name   string
		got    int
		bounds Bounds
	}
	lines := []countLine{
		{"users", len(snap.Users), exp.Users},
		{"chats", len(snap.Chats), exp.Chats},
		{"memberships", len(snap.Memberships), exp.Memberships},
		{"messages", len(snap.Messages), exp.Messages},
	}

	var offending []string
	for _, l := range lines {
		if !l.bounds.contains(l.got) {
			offending = append(offending, fmt.Sprintf("%s: got %d, expected %s", l.name, l.got, l.bounds))
		}
	}
	if len(offending) > 0 {
		return Result{Check: "row-counts", Status: Fail, Detail: "entity counts out of bounds", Offending: offending}
	}
	return Result{Check: "row-counts", Status: Pass,
		Detail: fmt.Sprintf("%d users, %d chats, %d memberships, %d messages",
			len(snap.Users), len(snap.Chats), len(snap.Memberships), len(snap.Messages))}
}

// CheckUniqueness looks for duplicate primary identifiers, handles,
// membership pairs and direct-chat keys.
func CheckUniqueness(snap *Snapshot, exp Expectations) Result {
	s := &sampler{limit: exp.SampleLimit}

	userIDs := make(map[uuid.UUID]struct{}, len(snap.Users))
	handles := make(map[string]struct{}, len(snap.Users))
	for _, u := range snap.Users {
		if _, dup := userIDs[u.ID]; dup {
			s.add("user id " + u.ID.String())
		}
		userIDs[u.ID] = struct{}{}
		handle := domain.NormalizeHandle(u.Username)
		if _, dup := handles[handle]; dup {
			s.add("username " + handle)
		}
		handles[handle] = struct{}{}
	}

	chatIDs := make(map[uuid.UUID]struct{}, len(snap.Chats))
	dmKeys := make(map[string]struct{})
	for _, c := range snap.Chats {
		if _, dup := chatIDs[c.ID]; dup {
			s.add("chat id " + c.ID.String())
		}
		chatIDs[c.ID] = struct{}{}
		if c.DMKey != nil {
			if _, dup := dmKeys[*c.DMKey]; dup {
				s.add("dm key " + *c.DMKey)
			}
			dmKeys[*c.DMKey] = struct{}{}
		}
	}

	pairs := make(map[string]struct{}, len(snap.Memberships))
	for _, m := range snap.Memberships {
		key := m.ChatID.String() + "/" + m.UserID.String()
		if _, dup := pairs[key]; dup {
			s.add("membership " + key)
		}
		pairs[key] = struct{}{}
	}

	msgIDs := make(map[uuid.UUID]struct{}, len(snap.Messages))
	for _, m := range snap.Messages {
		if _, dup := msgIDs[m.ID]; dup {
			s.add("message id " + m.ID.String())
		}
		msgIDs[m.ID] = struct{}{}
	}

	if s.total > 0 {
		return Result{Check: "uniqueness", Status: Fail,
			Detail: fmt.Sprintf("%d duplicated values", s.total), Offending: s.ids}
	}
	return Result{Check: "uniqueness", Status: Pass}
}

// CheckReferentialIntegrity verifies that memberships point at existing chats
// and users, and that every message belongs to an existing chat and was sent
// by someone who was a member of it at send time.
func CheckReferentialIntegrity(snap *Snapshot, exp Expectations) Result {
	s := &sampler{limit: exp.SampleLimit}

	users := make(map[uuid.UUID]struct{}, len(snap.Users))
	for _, u := range snap.Users {
		users[u.ID] = struct{}{}
	}
	chats := make(map[uuid.UUID]struct{}, len(snap.Chats))
	for _, c := range snap.Chats {
		chats[c.ID] = struct{}{}
	}
	joined := make(map[string]domain.Membership, len(snap.Memberships))
	for _, m := range snap.Memberships {
		if _, ok := chats[m.ChatID]; !ok {
			s.add(fmt.Sprintf("membership %s/%s: unknown chat", m.ChatID, m.UserID))
		}
		if _, ok := users[m.UserID]; !ok {
			s.add(fmt.Sprintf("membership %s/%s: unknown user", m.ChatID, m.UserID))
		}
		joined[m.ChatID.String()+"/"+m.UserID.String()] = m
	}

	for _, msg := range snap.Messages {
		if _, ok := chats[msg.ChatID]; !ok {
			s.add(fmt.Sprintf("message %s: unknown chat %s", msg.ID, msg.ChatID))
			continue
		}
		membership, ok := joined[msg.ChatID.String()+"/"+msg.SenderID.String()]
		if !ok {
			s.add(fmt.Sprintf("message %s: sender %s is not a member of chat %s", msg.ID, msg.SenderID, msg.ChatID))
			continue
		}
		if msg.CreatedAt.Before(membership.JoinedAt) {
			s.add(fmt.Sprintf("message %s: sent before sender joined", msg.ID))
		}
	}

	if s.total > 0 {
		return Result{Check: "referential-integrity", Status: Fail,
			Detail: fmt.Sprintf("%d broken references", s.total), Offending: s.ids}
	}
	return Result{Check: "referential-integrity", Status: Pass}
}

// CheckCardinality verifies the membership count of every chat: exactly two
// for direct chats, at least the configured minimum for groups.
func CheckCardinality(snap *Snapshot, exp Expectations) Result {
	s := &sampler{limit: exp.SampleLimit}

	members := make(map[uuid.UUID]int, len(snap.Chats))
	for _, m := range snap.Memberships {
		members[m.ChatID]++
	}

	groupMin := exp.GroupSizeMin
	if groupMin < 2 {
		groupMin = 2
	}
	for _, c := range snap.Chats {
		n := members[c.ID]
		switch c.Kind {
		case domain.ChatDirect:
			if n != 2 {
				s.add(fmt.Sprintf("direct chat %s has %d members", c.ID, n))
			}
		case domain.ChatGroup:
			if n < groupMin {
				s.add(fmt.Sprintf("group chat %s has %d members, minimum %d", c.ID, n, groupMin))
			}
		default:
			s.add(fmt.Sprintf("chat %s has unknown kind %q", c.ID, c.Kind))
		}
	}

	if s.total > 0 {
		return Result{Check: "cardinality", Status: Fail,
			Detail: fmt.Sprintf("%d chats with wrong membership count", s.total), Offending: s.ids}
	}
	return Result{Check: "cardinality", Status: Pass}
}

// CheckDMKeyFormat recomputes each direct chat's key from its two members and
// compares, without relying on how the generator derived it. Order
// independence is implied: the recomputation sorts the pair itself.
func CheckDMKeyFormat(snap *Snapshot, exp Expectations) Result {
	s := &sampler{limit: exp.SampleLimit}

	members := make(map[uuid.UUID][]uuid.UUID, len(snap.Chats))
	for _, m := range snap.Memberships {
		members[m.ChatID] = append(members[m.ChatID], m.UserID)
	}

	for _, c := range snap.Chats {
		switch c.Kind {
		case domain.ChatDirect:
			if c.DMKey == nil {
				s.add(fmt.Sprintf("direct chat %s has no dm key", c.ID))
				continue
			}
			if !domain.WellFormedDMKey(*c.DMKey) {
				s.add(fmt.Sprintf("direct chat %s has malformed dm key %q", c.ID, *c.DMKey))
				continue
			}
			pair := members[c.ID]
			if len(pair) != 2 {
				// Cardinality check owns this case; the key cannot be recomputed.
				continue
			}
			if want := domain.DMKey(pair[0], pair[1]); *c.DMKey != want {
				s.add(fmt.Sprintf("direct chat %s: dm key does not match its members", c.ID))
			}
		case domain.ChatGroup:
			if c.DMKey != nil {
				s.add(fmt.Sprintf("group chat %s carries a dm key", c.ID))
			}
		}
	}

	if s.total > 0 {
		return Result{Check: "dm-key-format", Status: Fail,
			Detail: fmt.Sprintf("%d malformed or mismatched keys", s.total), Offending: s.ids}
	}
	return Result{Check: "dm-key-format", Status: Pass}
}

// CheckTemporal verifies that no message predates its chat and that the
// business-hours share of message timestamps roughly matches the configured
// weighting. The statistical part reports inconclusive below the minimum
// sample size instead of passing or failing on noise.
func CheckTemporal(snap *Snapshot, exp Expectations) Result {
	s := &sampler{limit: exp.SampleLimit}

	created := make(map[uuid.UUID]domain.Chat, len(snap.Chats))
	for _, c := range snap.Chats {
		created[c.ID] = c
	}
	inWindow := 0
	for _, m := range snap.Messages {
		if c, ok := created[m.ChatID]; ok && m.CreatedAt.Before(c.CreatedAt) {
			s.add(fmt.Sprintf("message %s predates its chat", m.ID))
		}
		if domain.InBusinessWindow(m.CreatedAt, exp.BusinessHourStart, exp.BusinessHourEnd) {
			inWindow++
		}
	}
	if s.total > 0 {
		return Result{Check: "temporal", Status: Fail,
			Detail: fmt.Sprintf("%d messages before their chat's creation", s.total), Offending: s.ids}
	}

	// A tolerance of 1 or more accepts any share: fixture datasets carry
	// explicit timestamps, not a weighting contract.
	if exp.RatioTolerance >= 1 {
		return Result{Check: "temporal", Status: Pass,
			Detail: fmt.Sprintf("%d messages, all after their chat's creation", len(snap.Messages))}
	}

	if len(snap.Messages) < exp.MinTemporalSamples {
		return Result{Check: "temporal", Status: Inconclusive,
			Detail: fmt.Sprintf("%d messages, need %d for the distribution check",
				len(snap.Messages), exp.MinTemporalSamples)}
	}

	// Non-business draws still land in the window by chance, so the expected
	// share is the weighting plus the uniform leakage.
	leak := domain.BusinessWindowFraction(exp.BusinessHourStart, exp.BusinessHourEnd)
	expected := exp.BusinessRatio + (1-exp.BusinessRatio)*leak
	observed := float64(inWindow) / float64(len(snap.Messages))
	if diff := observed - expected; diff > exp.RatioTolerance || diff < -exp.RatioTolerance {
		return Result{Check: "temporal", Status: Fail,
			Detail: fmt.Sprintf("business-hours share %.2f, expected %.2f ± %.2f", observed, expected, exp.RatioTolerance)}
	}
	return Result{Check: "temporal", Status: Pass,
		Detail: fmt.Sprintf("business-hours share %.2f, expected %.2f", observed, expected)}
}
