package main

import (
	"time"

	"chat-dblab/internal"
)

type Config struct {
	internal.StoreConfig

	// Trials per query, not counting the discarded warm-up run.
	Trials       int           `env:"BENCH_TRIALS,default=5"`
	TrialTimeout time.Duration `env:"BENCH_TRIAL_TIMEOUT,default=10s"`

	// StrictThresholds turns threshold regressions into a non-zero exit.
	StrictThresholds bool `env:"STRICT_THRESHOLDS,default=false"`

	JSONOutput bool `env:"JSON_OUTPUT,default=false"`
}
