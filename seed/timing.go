package seed

import (
	"math/rand"
	"time"
)

// TimeModel samples message timestamps with a business-activity bias inside a
// bounded historical window ending at Now.
//
// Weighting function (documented choice): with probability BusinessRatio the
// sample lands on a weekday between StartHour and EndHour; otherwise it is
// uniform over the whole window. Weekends under a business draw are shifted
// back to the nearest Friday, which leaves weekdays roughly 2.4x heavier than
// weekend days overall at the default 0.7 ratio.
type TimeModel struct {
	Now           time.Time
	Window        time.Duration
	BusinessRatio float64
	StartHour     int
	EndHour       int
}

// Sample draws one timestamp no earlier than notBefore. Draws that land before
// notBefore (a chat younger than the window) are redrawn uniformly between
// notBefore and Now so the invariant holds without skewing old chats.
func (m TimeModel) Sample(rng *rand.Rand, notBefore time.Time) time.Time {
	t := m.draw(rng)
	if !t.Before(notBefore) {
		return t
	}
	span := m.Now.Sub(notBefore)
	if span <= 0 {
		return notBefore
	}
	return notBefore.Add(time.Duration(rng.Int63n(int64(span))))
}

func (m TimeModel) draw(rng *rand.Rand) time.Time {
	start := m.Now.Add(-m.Window)
	uniform := start.Add(time.Duration(rng.Int63n(int64(m.Window))))
	if rng.Float64() >= m.BusinessRatio {
		return uniform
	}

	// Business draw: keep the sampled day, force a business-hour slot,
	// and step weekends back onto a weekday.
	day := uniform.Truncate(24 * time.Hour)
	for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		day = day.Add(-24 * time.Hour)
	}
	hour := m.StartHour + rng.Intn(m.EndHour-m.StartHour)
	t := day.Add(time.Duration(hour)*time.Hour +
		time.Duration(rng.Intn(60))*time.Minute +
		time.Duration(rng.Intn(60))*time.Second)
	if t.After(m.Now) {
		return uniform
	}
	return t
}

