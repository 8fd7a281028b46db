package domain

import "time"

// InBusinessWindow reports whether t falls on a weekday between startHour
// (inclusive) and endHour (exclusive). Generation weights message timestamps
// towards this window; verification measures the share that landed in it.
func InBusinessWindow(t time.Time, startHour, endHour int) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	h := t.Hour()
	return h >= startHour && h < endHour
}

// BusinessWindowFraction is the share of wall-clock time the window covers:
// the hit rate a purely uniform sampler would achieve.
func BusinessWindowFraction(startHour, endHour int) float64 {
	return (5.0 / 7.0) * float64(endHour-startHour) / 24.0
}
