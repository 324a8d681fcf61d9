package calendar

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// The option builder uses it to determine the current year.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
// Tests and the CLI use it to pin the "current year" of the date picker.
type FixedClock time.Time

// Now returns the pinned instant.
func (c FixedClock) Now() time.Time {
	return time.Time(c)
}
