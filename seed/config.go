package seed

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ScaleConfig parameterizes the pseudo-random strategy. Validation happens
// before any store interaction.
type ScaleConfig struct {
	Users       int `validate:"gt=0"`
	GroupChats  int `validate:"gte=0"`
	DirectChats int `validate:"gte=0"`
	Messages    int `validate:"gte=0"`

	// SpanDays bounds the historical window messages fall into.
	SpanDays int `validate:"gt=0"`

	GroupSizeMin int `validate:"gte=2"`
	GroupSizeMax int `validate:"gte=2"`

	// BusinessRatio is the share of messages drawn from weekday business
	// hours; the rest spread uniformly over the window.
	BusinessRatio     float64 `validate:"gte=0,lte=1"`
	BusinessHourStart int     `validate:"gte=0,lte=23"`
	BusinessHourEnd   int     `validate:"gte=1,lte=24"`

	// ActiveUserRatio is the share of users that actually send messages.
	ActiveUserRatio float64 `validate:"gt=0,lte=1"`
	// AdminPromotionChance promotes non-founding group members to admin.
	AdminPromotionChance float64 `validate:"gte=0,lte=1"`

	MaxUserAgeDays  int `validate:"gt=0"`
	MaxChatAgeDays  int `validate:"gt=0"`
	MaxJoinDelayMin int `validate:"gte=0"`

	Seed int64
}

// DefaultScaleConfig matches the reference workload: 200 users, 75 groups,
// 300 direct chats, 25k messages over 4 months.
func DefaultScaleConfig() ScaleConfig {
	return ScaleConfig{
		Users:                200,
		GroupChats:           75,
		DirectChats:          300,
		Messages:             25000,
		SpanDays:             120,
		GroupSizeMin:         3,
		GroupSizeMax:         15,
		BusinessRatio:        0.7,
		BusinessHourStart:    9,
		BusinessHourEnd:      18,
		ActiveUserRatio:      0.7,
		AdminPromotionChance: 0.1,
		MaxUserAgeDays:       180,
		MaxChatAgeDays:       120,
		MaxJoinDelayMin:      60,
		Seed:                 1,
	}
}

// Validate applies the struct rules plus the cross-field constraints the tags
// cannot express.
func (c ScaleConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("scale config: %w", err)
	}
	if c.GroupSizeMax < c.GroupSizeMin {
		return fmt.Errorf("scale config: group size max %d below min %d", c.GroupSizeMax, c.GroupSizeMin)
	}
	if c.BusinessHourEnd <= c.BusinessHourStart {
		return fmt.Errorf("scale config: business hours end %d not after start %d", c.BusinessHourEnd, c.BusinessHourStart)
	}
	if c.GroupChats > 0 && c.Users < c.GroupSizeMin {
		return fmt.Errorf("scale config: %d users cannot fill groups of at least %d", c.Users, c.GroupSizeMin)
	}
	if c.DirectChats > 0 && c.Users < 2 {
		return fmt.Errorf("scale config: direct chats need at least 2 users")
	}
	if c.Messages > 0 && c.GroupChats+c.DirectChats == 0 {
		return fmt.Errorf("scale config: %d messages requested but no chats to hold them", c.Messages)
	}
	if maxPairs := c.Users * (c.Users - 1) / 2; c.DirectChats > maxPairs {
		return fmt.Errorf("scale config: %d direct chats exceed the %d distinct pairs of %d users",
			c.DirectChats, maxPairs, c.Users)
	}
	return nil
}
