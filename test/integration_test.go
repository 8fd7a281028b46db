package test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"chat-dblab/auth"
	"chat-dblab/bench"
	"chat-dblab/fixtures"
	"chat-dblab/repositories"
	"chat-dblab/retry"
	"chat-dblab/seed"
	"chat-dblab/verify"
)

type Config struct {
	// INTEGRATION_DATABASE_URL points at a disposable database with the schema
	// migrated; the test wipes it before and after.
	DatabaseURL string        `envconfig:"INTEGRATION_DATABASE_URL"`
	Timeout     time.Duration `envconfig:"INTEGRATION_TIMEOUT" default:"30s"`
}

func Test_Populate_Verify_Bench_Round_Trip(t *testing.T) {
	req := require.New(t)
	var cfg Config
	req.NoError(envconfig.Process("", &cfg))
	if cfg.DatabaseURL == "" {
		t.Skip("INTEGRATION_DATABASE_URL not set")
	}

	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	policy := retry.DefaultPolicy()

	pool, err := repositories.Connect(ctx, cfg.DatabaseURL, policy)
	req.NoError(err)
	store := repositories.NewStore(pool, log, cfg.Timeout)

	// Start from and return to a clean database.
	req.NoError(store.Wipe(ctx))
	t.Cleanup(func() {
		req.NoError(store.Wipe(ctx))
		pool.Close()
	})

	// Given the embedded fixture catalogue
	set, err := fixtures.Default()
	req.NoError(err)
	hash, err := auth.HashPassword("password123")
	req.NoError(err)

	// When it is populated twice (the second run must be a no-op)
	runner := seed.NewRunner(store, policy, 100, log)
	rep, err := runner.Run(ctx, seed.NewFixtureStrategy(set, hash, time.Now().UTC()))
	req.NoError(err)
	req.Equal(35, rep.Total())

	_, err = runner.Run(ctx, seed.NewFixtureStrategy(set, hash, time.Now().UTC()))
	req.NoError(err)

	users, chats, memberships, messages, err := store.Counts(ctx)
	req.NoError(err)
	req.Equal(5, users)
	req.Equal(4, chats)
	req.Equal(10, memberships)
	req.Equal(16, messages)

	// Then the persisted rows satisfy every invariant
	snap, err := store.Snapshot(ctx)
	req.NoError(err)

	exp := verify.DefaultExpectations()
	exp.Users = verify.Exactly(users)
	exp.Chats = verify.Exactly(chats)
	exp.Memberships = verify.Exactly(memberships)
	exp.Messages = verify.Exactly(messages)
	exp.RatioTolerance = 1
	verdict := verify.Run(snap, exp)
	req.True(verdict.Passed, "%+v", verdict.Results)

	// And the whole query catalogue executes against them
	subjects, err := store.Subjects(ctx)
	req.NoError(err)
	req.NotEqual([16]byte{}, [16]byte(subjects.ChatID))

	harness := bench.NewHarness(store, 2, cfg.Timeout, log)
	benchRep, err := harness.Run(ctx, bench.Catalogue(), subjects)
	req.NoError(err)
	req.NotEqual(bench.StatusFailure, benchRep.Status)
	req.Len(benchRep.Results, len(bench.Catalogue()))
}
