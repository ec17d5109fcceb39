package state

import "time"

// Clock supplies the instants recorded as start and end times.
type Clock interface {
	Now() time.Time
}

// WallClock reads the system clock.
type WallClock struct{}

// Now returns time.Now().
func (WallClock) Now() time.Time { return time.Now() }

// SimClock is a clock advanced by the simulation step loop, so recorded run
// times are simulated seconds and replay deterministically.
type SimClock struct {
	now time.Time
}

// NewSimClock starts a simulated clock at origin.
func NewSimClock(origin time.Time) *SimClock {
	return &SimClock{now: origin}
}

// Now returns the current simulated instant.
func (c *SimClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *SimClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
