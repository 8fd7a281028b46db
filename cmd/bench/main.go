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

	"chat-dblab/bench"
	"chat-dblab/report"
	"chat-dblab/repositories"
	"chat-dblab/retry"
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

	subjects, err := store.Subjects(ctx)
	if err != nil {
		return fmt.Errorf("pick bench subjects: %w", err)
	}
	log.Info("bench subjects picked", "chat_id", subjects.ChatID, "user_id", subjects.UserID)

	harness := bench.NewHarness(store, config.Trials, config.TrialTimeout, log)
	rep, err := harness.Run(ctx, bench.Catalogue(), subjects)
	if err != nil {
		return err
	}

	if config.JSONOutput {
		if err := report.WriteJSON(os.Stdout, rep); err != nil {
			return err
		}
	} else {
		report.Bench(os.Stdout, rep)
	}

	switch rep.Status {
	case bench.StatusFailure:
		return fmt.Errorf("benchmark failed: %d queries errored on every trial", rep.Errors)
	case bench.StatusWithWarnings:
		if config.StrictThresholds {
			return fmt.Errorf("benchmark exceeded thresholds: %d regressions", rep.Regressions)
		}
	}
	return nil
}
