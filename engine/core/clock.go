package core

import "time"

// Clock tracks wall-clock time between frames.
type Clock struct {
	lastTick time.Time
	delta    float64
}

func NewClock() *Clock {
	return &Clock{}
}

// Start resets the clock to the current instant. Delta is zero until
// the first Tick.
func (c *Clock) Start() {
	c.lastTick = time.Now()
	c.delta = 0
}

// Tick advances the clock and records the elapsed time, in seconds,
// since the previous Tick (or Start). Has no effect on non-started clocks.
func (c *Clock) Tick() {
	if c.lastTick.IsZero() {
		return
	}
	now := time.Now()
	c.delta = now.Sub(c.lastTick).Seconds()
	c.lastTick = now
}

// Delta returns the elapsed seconds recorded by the most recent Tick.
func (c *Clock) Delta() float64 {
	return c.delta
}
