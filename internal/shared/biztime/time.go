// Package biztime centralizes time handling for the allocation engine.
// All storage and transport use UTC; agency-local display is the client's
// concern. Deadline and window comparisons must go through these helpers so
// tests can reason about a single clock convention.
package biztime

import "time"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ToUTC normalizes a time to UTC.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// After reports whether a is strictly after b, comparing in UTC.
func After(a, b time.Time) bool {
	return a.UTC().After(b.UTC())
}
