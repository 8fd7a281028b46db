package bench

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "chat-dblab/errors"
)

// fakeExecutor counts calls per statement and can fail selectively.
type fakeExecutor struct {
	mu    sync.Mutex
	calls map[string]int
	rows  int
	fail  func(sql string, call int) error
}

func newFakeExecutor(rows int) *fakeExecutor {
	return &fakeExecutor{calls: make(map[string]int), rows: rows}
}

func (f *fakeExecutor) Run(ctx context.Context, sql string, args ...any) (int, error) {
	f.mu.Lock()
	f.calls[sql]++
	call := f.calls[sql]
	f.mu.Unlock()
	if f.fail != nil {
		if err := f.fail(sql, call); err != nil {
			return 0, err
		}
	}
	return f.rows, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCatalogue() []Query {
	return []Query{
		{
			Name:      "first",
			SQL:       "SELECT 1",
			Threshold: time.Minute,
			Args:      func(Subjects) []any { return nil },
		},
		{
			Name:      "second",
			SQL:       "SELECT 2",
			Threshold: time.Minute,
			Args:      func(Subjects) []any { return nil },
		},
	}
}

func TestHarness_Runs_Trials_Plus_Warmup(t *testing.T) {
	req := require.New(t)
	exec := newFakeExecutor(42)

	harness := NewHarness(exec, 3, time.Second, testLogger())
	rep, err := harness.Run(context.Background(), testCatalogue(), Subjects{})
	req.NoError(err)

	req.Equal(StatusSuccess, rep.Status)
	req.Len(rep.Results, 2)
	for _, res := range rep.Results {
		req.Equal(3, res.Trials)
		req.Zero(res.FailedTrials)
		req.Equal(42, res.Rows)
		req.False(res.Regression)
		req.LessOrEqual(res.Min, res.Avg)
		req.LessOrEqual(res.Avg, res.Max)
	}
	req.Equal(4, exec.calls["SELECT 1"], "three trials plus the discarded warm-up")
	req.Equal(4, exec.calls["SELECT 2"])
}

func TestHarness_Flags_Threshold_Regressions(t *testing.T) {
	req := require.New(t)
	exec := newFakeExecutor(1)

	catalogue := testCatalogue()
	// Any measurable trial exceeds a zero threshold.
	catalogue[1].Threshold = 0

	harness := NewHarness(exec, 2, time.Second, testLogger())
	rep, err := harness.Run(context.Background(), catalogue, Subjects{})
	req.NoError(err)

	req.Equal(StatusWithWarnings, rep.Status)
	req.Equal(1, rep.Regressions)
	req.Zero(rep.Errors)
	req.False(rep.Results[0].Regression)
	req.True(rep.Results[1].Regression)
}

func TestHarness_Marks_Fully_Failing_Queries(t *testing.T) {
	req := require.New(t)
	exec := newFakeExecutor(1)
	exec.fail = func(sql string, call int) error {
		if sql == "SELECT 1" {
			return errors.New("relation does not exist")
		}
		return nil
	}

	harness := NewHarness(exec, 3, time.Second, testLogger())
	rep, err := harness.Run(context.Background(), testCatalogue(), Subjects{})
	req.NoError(err)

	req.Equal(StatusFailure, rep.Status)
	req.Equal(1, rep.Errors)

	broken := rep.Results[0]
	req.Equal(3, broken.FailedTrials)
	req.Contains(broken.LastError, "relation does not exist")

	healthy := rep.Results[1]
	req.Zero(healthy.FailedTrials, "one broken query never stops the rest")
}

func TestHarness_Partial_Failures_Are_Not_Fatal(t *testing.T) {
	req := require.New(t)
	exec := newFakeExecutor(1)
	exec.fail = func(sql string, call int) error {
		// Warm-up is call 1; fail the first real trial only.
		if sql == "SELECT 1" && call == 2 {
			return errors.New("transient")
		}
		return nil
	}

	harness := NewHarness(exec, 3, time.Second, testLogger())
	rep, err := harness.Run(context.Background(), testCatalogue(), Subjects{})
	req.NoError(err)

	req.Equal(StatusSuccess, rep.Status)
	req.Zero(rep.Errors)
	req.Equal(1, rep.Results[0].FailedTrials)
}

func TestHarness_Rejects_Empty_Catalogue(t *testing.T) {
	req := require.New(t)

	harness := NewHarness(newFakeExecutor(0), 3, time.Second, testLogger())
	_, err := harness.Run(context.Background(), nil, Subjects{})
	req.ErrorIs(err, apperrors.ErrEmptyCatalogue)
}

func TestHarness_Full_Catalogue_Against_Empty_Store(t *testing.T) {
	req := require.New(t)
	exec := newFakeExecutor(0)

	harness := NewHarness(exec, 2, time.Second, testLogger())
	rep, err := harness.Run(context.Background(), Catalogue(), Subjects{})
	req.NoError(err)

	req.Equal(StatusSuccess, rep.Status)
	req.Len(rep.Results, len(Catalogue()))
	for _, res := range rep.Results {
		req.Zero(res.Rows)
	}
}
