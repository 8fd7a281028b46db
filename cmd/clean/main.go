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

	"chat-dblab/internal"
	"chat-dblab/repositories"
	"chat-dblab/retry"
)

type Config struct {
	internal.StoreConfig

	// Confirm must be set to "yes": the wipe is unconditional once it runs.
	Confirm string `env:"CLEAN_CONFIRM,default="`
}

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

	if config.Confirm != "yes" {
		return fmt.Errorf("refusing to wipe: set CLEAN_CONFIRM=yes to proceed")
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

	users, chats, memberships, messages, err := store.Counts(ctx)
	if err != nil {
		return fmt.Errorf("count existing data: %w", err)
	}
	log.Info("wiping store",
		"users", users, "chats", chats, "memberships", memberships, "messages", messages)

	if err := store.Wipe(ctx); err != nil {
		return fmt.Errorf("wipe failed: %w", err)
	}
	log.Info("store wiped")
	return nil
}
