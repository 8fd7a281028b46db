package main

import "chat-dblab/internal"

type Config struct {
	internal.StoreConfig

	// Mode selects the generation strategy: "fixture" or "scale".
	Mode      string `env:"POPULATE_MODE,default=fixture"`
	BatchSize int    `env:"BATCH_SIZE,default=1000"`

	// KeepExisting skips the pre-population wipe. Deterministic re-runs are
	// idempotent either way; scale runs expect a clean store.
	KeepExisting bool   `env:"KEEP_EXISTING,default=false"`
	SeedPassword string `env:"SEED_PASSWORD,default=password123"`

	// Optional external fixture catalogue; embedded defaults otherwise.
	UsersFile         string `env:"FIXTURE_USERS_FILE"`
	ConversationsFile string `env:"FIXTURE_CONVERSATIONS_FILE"`

	// Scale-mode shape.
	ScaleUsers       int   `env:"SCALE_USERS,default=200"`
	ScaleGroupChats  int   `env:"SCALE_GROUP_CHATS,default=75"`
	ScaleDirectChats int   `env:"SCALE_DIRECT_CHATS,default=300"`
	ScaleMessages    int   `env:"SCALE_MESSAGES,default=25000"`
	ScaleSpanDays    int   `env:"SCALE_SPAN_DAYS,default=120"`
	ScaleSeed        int64 `env:"SCALE_SEED,default=1"`
	GroupSizeMin     int   `env:"GROUP_SIZE_MIN,default=3"`
	GroupSizeMax     int   `env:"GROUP_SIZE_MAX,default=15"`

	BusinessRatio     float64 `env:"BUSINESS_RATIO,default=0.7"`
	BusinessHourStart int     `env:"BUSINESS_HOUR_START,default=9"`
	BusinessHourEnd   int     `env:"BUSINESS_HOUR_END,default=18"`
	ActiveUserRatio   float64 `env:"ACTIVE_USER_RATIO,default=0.7"`
}
