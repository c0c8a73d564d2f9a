package fx

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/iburimskiy/landing-fx/internal/config"
)

// Ball is the bouncing ball with its floor shadow. While not paused it
// re-picks its colour from the palette every config.BallColorPeriod.
type Ball struct {
	// Period is the time of one full bounce in seconds.
	Period float64

	rng        *rand.Rand
	paused     bool
	t          float64
	sinceColor time.Duration
	pick       int
}

func NewBall(rng *rand.Rand) *Ball {
	return &Ball{Period: config.BallSpeed, rng: rng}
}

func (b *Ball) TogglePause() { b.paused = !b.paused }
func (b *Ball) Paused() bool { return b.paused }

func (b *Ball) Advance(dt time.Duration) {
	if b.paused {
		return
	}
	b.t += dt.Seconds()
	b.sinceColor += dt
	for b.sinceColor >= config.BallColorPeriod {
		b.sinceColor -= config.BallColorPeriod
		b.pick = b.rng.Intn(3)
	}
}

// Height is the ball's lift above the floor in [0,1].
func (b *Ball) Height() float64 {
	if b.Period <= 0 {
		return 0
	}
	return math.Abs(math.Sin(math.Pi * b.t / b.Period))
}

// ShadowScale shrinks the shadow as the ball rises.
func (b *Ball) ShadowScale() float64 { return 1 - 0.5*b.Height() }

// Color chooses among the three palette colours.
func (b *Ball) Color(primary, secondary, accent color.Color) color.Color {
	return [...]color.Color{primary, secondary, accent}[b.pick]
}
