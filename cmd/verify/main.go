package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"chat-dblab/fixtures"
	"chat-dblab/report"
	"chat-dblab/repositories"
	"chat-dblab/retry"
	"chat-dblab/verify"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	expectations, err := buildExpectations(config)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	policy := retry.Policy{
		MaxAttempts: config.RetryAttempts,
		Backoff:     config.RetryBackoff,
		Multiplier:  2,
	}
	pool, err := repositories.Connect(ctx, config.DatabaseURL, policy)
	if err != nil {
		return fmt.Errorf("store connection failed: %w", err)
	}
	defer pool.Close()
	store := repositories.NewStore(pool, log, config.RoundTripTimeout)

	log.Info("loading snapshot")
	snap, err := store.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	log.Info("snapshot loaded",
		"users", len(snap.Users),
		"chats", len(snap.Chats),
		"memberships", len(snap.Memberships),
		"messages", len(snap.Messages),
	)

	rep := verify.Run(snap, expectations)
	if config.JSONOutput {
		if err := report.WriteJSON(os.Stdout, rep); err != nil {
			return err
		}
	} else {
		report.Verify(os.Stdout, rep)
	}
	if !rep.Passed {
		return fmt.Errorf("verification failed: %d checks", rep.Failed)
	}
	return nil
}

func buildExpectations(config Config) (verify.Expectations, error) {
	exp := verify.DefaultExpectations()
	exp.BusinessRatio = config.BusinessRatio
	exp.BusinessHourStart = config.BusinessHourStart
	exp.BusinessHourEnd = config.BusinessHourEnd

	switch config.Mode {
	case "fixture":
		set, err := fixtures.Default()
		if err != nil {
			return exp, err
		}
		users, chats, memberships, messages := set.Counts()
		exp.Users = verify.Exactly(users)
		exp.Chats = verify.Exactly(chats)
		exp.Memberships = verify.Exactly(memberships)
		exp.Messages = verify.Exactly(messages)
		// Fixture timestamps are explicit, so no distribution to check.
		exp.RatioTolerance = 1
	case "scale":
		exp.GroupSizeMin = config.GroupSizeMin
		exp.Users = verify.Exactly(config.ScaleUsers)
		exp.Chats = verify.Exactly(config.ScaleGroupChats + config.ScaleDirectChats)
		exp.Memberships = verify.Between(
			config.ScaleGroupChats*config.GroupSizeMin+config.ScaleDirectChats*2,
			config.ScaleGroupChats*config.GroupSizeMax+config.ScaleDirectChats*2,
		)
		exp.Messages = verify.Between(0, config.ScaleMessages)
	case "none":
		huge := 1 << 40
		exp.Users = verify.Between(0, huge)
		exp.Chats = verify.Between(0, huge)
		exp.Memberships = verify.Between(0, huge)
		exp.Messages = verify.Between(0, huge)
	default:
		return exp, fmt.Errorf("unknown verify mode %q", config.Mode)
	}
	return exp, nil
}
