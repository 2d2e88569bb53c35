package clock

import "time"

// Clock provides the current time to stores so that creation
// timestamps can be controlled in tests
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time in UTC, truncated to whole seconds
// to match the stored timestamp precision
func (c *RealClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
