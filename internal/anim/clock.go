package anim

import "time"

// Clock reports seconds elapsed since it was started, excluding time spent
// paused.
type Clock struct {
	now      func() time.Time
	start    time.Time
	pausedAt time.Time
	paused   bool
}

// NewClock starts a clock on the wall clock's monotonic reading.
func NewClock() *Clock {
	return NewClockWithSource(time.Now)
}

// NewClockWithSource starts a clock on a custom time source.
func NewClockWithSource(now func() time.Time) *Clock {
	return &Clock{now: now, start: now()}
}

// Elapsed returns seconds since start. A paused clock reports the moment it
// was paused.
func (c *Clock) Elapsed() float64 {
	if c.paused {
		return c.pausedAt.Sub(c.start).Seconds()
	}
	return c.now().Sub(c.start).Seconds()
}

// Pause freezes Elapsed. Pausing twice is a no-op.
func (c *Clock) Pause() {
	if c.paused {
		return
	}
	c.pausedAt = c.now()
	c.paused = true
}

// Resume continues from the paused reading.
func (c *Clock) Resume() {
	if !c.paused {
		return
	}
	c.start = c.start.Add(c.now().Sub(c.pausedAt))
	c.paused = false
}

// Paused reports whether the clock is frozen.
func (c *Clock) Paused() bool {
	return c.paused
}

// Restart moves the start to now.
func (c *Clock) Restart() {
	c.start = c.now()
	c.pausedAt = c.start
}
