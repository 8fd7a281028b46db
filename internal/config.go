package internal

import "time"

// StoreConfig is the environment shared by every binary: where the store is
// and how patient each round trip should be. Binaries embed it in their own
// Config structs.
type StoreConfig struct {
	// DatabaseURL must carry a role with the rights the binary needs:
	// read-write for populate/clean, read-only suffices for verify/bench.
	DatabaseURL      string        `env:"DATABASE_URL,required=true"`
	LogLevel         string        `env:"LOG_LEVEL,default=INFO"`
	RoundTripTimeout time.Duration `env:"ROUND_TRIP_TIMEOUT,default=30s"`

	RetryAttempts int           `env:"RETRY_ATTEMPTS,default=3"`
	RetryBackoff  time.Duration `env:"RETRY_BACKOFF,default=200ms"`
}
