package main

import "chat-dblab/internal"

type Config struct {
	internal.StoreConfig

	// Mode picks the count expectations: "fixture" for exact fixture counts,
	// "scale" for range bounds derived from the scale shape, "none" to skip
	// count bounds entirely.
	Mode string `env:"VERIFY_MODE,default=fixture"`

	// Scale shape, used to derive range expectations in scale mode. Message
	// bounds stay loose: the sampler may drop slots on inactive chats.
	ScaleUsers       int `env:"SCALE_USERS,default=200"`
	ScaleGroupChats  int `env:"SCALE_GROUP_CHATS,default=75"`
	ScaleDirectChats int `env:"SCALE_DIRECT_CHATS,default=300"`
	ScaleMessages    int `env:"SCALE_MESSAGES,default=25000"`
	GroupSizeMin     int `env:"GROUP_SIZE_MIN,default=3"`
	GroupSizeMax     int `env:"GROUP_SIZE_MAX,default=15"`

	BusinessRatio     float64 `env:"BUSINESS_RATIO,default=0.7"`
	BusinessHourStart int     `env:"BUSINESS_HOUR_START,default=9"`
	BusinessHourEnd   int     `env:"BUSINESS_HOUR_END,default=18"`

	// JSONOutput switches the report to the machine-readable form.
	JSONOutput bool `env:"JSON_OUTPUT,default=false"`
}
