package verify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chat-dblab/domain"
	"chat-dblab/fixtures"
	"chat-dblab/seed"
)

// snapshotEmitter collects a strategy's output straight into a Snapshot.
type snapshotEmitter struct {
	snap Snapshot
}

func (e *snapshotEmitter) User(u domain.User) error {
	e.snap.Users = append(e.snap.Users, u)
	return nil
}

func (e *snapshotEmitter) Chat(c domain.Chat) error {
	e.snap.Chats = append(e.snap.Chats, c)
	return nil
}

func (e *snapshotEmitter) Membership(m domain.Membership) error {
	e.snap.Memberships = append(e.snap.Memberships, m)
	return nil
}

func (e *snapshotEmitter) Message(m domain.Message) error {
	e.snap.Messages = append(e.snap.Messages, m)
	return nil
}

func fixtureSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	set, err := fixtures.Default()
	require.NoError(t, err)

	out := &snapshotEmitter{}
	base := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	strategy := seed.NewFixtureStrategy(set, "hash", base)
	require.NoError(t, strategy.Generate(context.Background(), out))
	return &out.snap
}

func fixtureExpectations(t *testing.T) Expectations {
	t.Helper()
	set, err := fixtures.Default()
	require.NoError(t, err)

	users, chats, memberships, messages := set.Counts()
	exp := DefaultExpectations()
	exp.Users = Exactly(users)
	exp.Chats = Exactly(chats)
	exp.Memberships = Exactly(memberships)
	exp.Messages = Exactly(messages)
	return exp
}

func TestRun_Passes_On_Generated_Data(t *testing.T) {
	req := require.New(t)
	snap := fixtureSnapshot(t)

	rep := Run(snap, fixtureExpectations(t))

	req.True(rep.Passed)
	req.Zero(rep.Failed)
	req.Len(rep.Results, 6)
	// 16 messages are below the temporal sample floor.
	req.Equal(1, rep.Inconclusive)
	for _, res := range rep.Results {
		req.NotEqual(Fail, res.Status, res.Check)
	}
}

func TestRun_All_Checks_Pass_With_Unconstrained_Distribution(t *testing.T) {
	req := require.New(t)
	snap := fixtureSnapshot(t)

	exp := fixtureExpectations(t)
	exp.RatioTolerance = 1

	rep := Run(snap, exp)

	req.True(rep.Passed)
	req.Zero(rep.Inconclusive)
	for _, res := range rep.Results {
		req.Equal(Pass, res.Status, res.Check)
	}
}

func TestRun_Flags_Foreign_Sender_Without_Stopping(t *testing.T) {
	req := require.New(t)
	snap := fixtureSnapshot(t)

	// A message in the first chat sent by someone who never joined it.
	intruder := domain.DeterministicUUID("user_nobody")
	snap.Users = append(snap.Users, domain.User{
		ID:        intruder,
		Username:  "nobody",
		Status:    domain.StatusActive,
		CreatedAt: snap.Users[0].CreatedAt,
	})
	planted := domain.Message{
		ID:        domain.DeterministicUUID("planted"),
		ChatID:    snap.Chats[0].ID,
		SenderID:  intruder,
		Content:   "should not be here",
		CreatedAt: snap.Chats[0].CreatedAt.Add(time.Hour),
	}
	snap.Messages = append(snap.Messages, planted)

	exp := fixtureExpectations(t)
	exp.Users = Exactly(len(snap.Users))
	exp.Messages = Exactly(len(snap.Messages))

	rep := Run(snap, exp)

	req.False(rep.Passed)
	req.Equal(1, rep.Failed)
	req.Len(rep.Results, 6, "every check still runs")

	var integrity Result
	for _, res := range rep.Results {
		if res.Check == "referential-integrity" {
			integrity = res
		}
	}
	req.Equal(Fail, integrity.Status)
	req.Len(integrity.Offending, 1)
	req.Contains(integrity.Offending[0], planted.ID.String())
}

func TestRun_On_Empty_Snapshot(t *testing.T) {
	req := require.New(t)

	exp := DefaultExpectations()
	exp.Users = Between(0, 10)
	exp.Chats = Between(0, 10)
	exp.Memberships = Between(0, 10)
	exp.Messages = Between(0, 10)

	rep := Run(&Snapshot{}, exp)

	req.True(rep.Passed)
	req.Equal(1, rep.Inconclusive, "no messages to judge the distribution on")
}
