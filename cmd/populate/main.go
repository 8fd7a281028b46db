package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"chat-dblab/auth"
	apperrors "chat-dblab/errors"
	"chat-dblab/fixtures"
	"chat-dblab/report"
	"chat-dblab/repositories"
	"chat-dblab/retry"
	"chat-dblab/seed"
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

	// Build the strategy before touching the store: configuration errors must
	// fail fast.
	passwordHash, err := auth.HashPassword(config.SeedPassword)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}
	strategy, err := buildStrategy(config, passwordHash)
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

	if !config.KeepExisting {
		users, chats, memberships, messages, err := store.Counts(ctx)
		if err != nil {
			return fmt.Errorf("count existing data: %w", err)
		}
		if users+chats+memberships+messages > 0 {
			log.Info("clearing existing data",
				"users", users, "chats", chats, "memberships", memberships, "messages", messages)
			if err := store.Wipe(ctx); err != nil {
				return fmt.Errorf("clear existing data: %w", err)
			}
		}
	}

	runner := seed.NewRunner(store, policy, config.BatchSize, log)
	rep, err := runner.Run(ctx, strategy)
	if err != nil {
		log.Error("population failed",
			"committed", rep.Total(), "batches", rep.Batches, "error", err)
		return err
	}
	report.Seed(os.Stdout, rep)
	return nil
}

func buildStrategy(config Config, passwordHash string) (seed.Strategy, error) {
	switch config.Mode {
	case "fixture":
		set, err := loadFixtures(config)
		if err != nil {
			return nil, err
		}
		return seed.NewFixtureStrategy(set, passwordHash, time.Now()), nil
	case "scale":
		cfg := seed.ScaleConfig{
			Users:                config.ScaleUsers,
			GroupChats:           config.ScaleGroupChats,
			DirectChats:          config.ScaleDirectChats,
			Messages:             config.ScaleMessages,
			SpanDays:             config.ScaleSpanDays,
			GroupSizeMin:         config.GroupSizeMin,
			GroupSizeMax:         config.GroupSizeMax,
			BusinessRatio:        config.BusinessRatio,
			BusinessHourStart:    config.BusinessHourStart,
			BusinessHourEnd:      config.BusinessHourEnd,
			ActiveUserRatio:      config.ActiveUserRatio,
			AdminPromotionChance: seed.DefaultScaleConfig().AdminPromotionChance,
			MaxUserAgeDays:       seed.DefaultScaleConfig().MaxUserAgeDays,
			MaxChatAgeDays:       min(config.ScaleSpanDays, seed.DefaultScaleConfig().MaxChatAgeDays),
			MaxJoinDelayMin:      seed.DefaultScaleConfig().MaxJoinDelayMin,
			Seed:                 config.ScaleSeed,
		}
		return seed.NewScaleStrategy(cfg, passwordHash, time.Now())
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownStrategy, config.Mode)
	}
}

func loadFixtures(config Config) (fixtures.Set, error) {
	if config.UsersFile != "" || config.ConversationsFile != "" {
		return fixtures.Load(config.UsersFile, config.ConversationsFile)
	}
	return fixtures.Default()
}
