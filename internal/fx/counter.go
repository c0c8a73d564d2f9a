package fx

import (
	"math"
	"time"
)

// Counter rolls a number from 0 up to Target once it has been started.
// Starting it again has no effect.
type Counter struct {
	Label    string
	Target   int
	Duration time.Duration

	started bool
	elapsed time.Duration
}

func NewCounter(label string, target int, d time.Duration) *Counter {
	return &Counter{Label: label, Target: target, Duration: d}
}

// Start begins the animation. It reports whether this call started it.
func (c *Counter) Start() bool {
	if c.started {
		return false
	}
	c.started = true
	c.elapsed = 0
	return true
}

func (c *Counter) Started() bool { return c.started }

func (c *Counter) Advance(dt time.Duration) {
	if c.started {
		c.elapsed += dt
	}
}

// Progress is the animation progress in [0,1].
func (c *Counter) Progress() float64 {
	if !c.started {
		return 0
	}
	if c.Duration <= 0 {
		return 1
	}
	return math.Min(float64(c.elapsed)/float64(c.Duration), 1)
}

// Value is the number currently displayed.
func (c *Counter) Value() int {
	return int(math.Floor(c.Progress() * float64(c.Target)))
}
