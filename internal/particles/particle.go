package particles

import (
	"image/color"
	"math/rand"

	"github.com/iburimskiy/landing-fx/internal/config"
)

// Particle is a single point of the backdrop. Radius and Color are fixed at
// creation; only the position and the sign of the velocity change.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Color  color.NRGBA
}

func newParticle(rng *rand.Rand, w, h float64) Particle {
	return Particle{
		X:      rng.Float64() * w,
		Y:      rng.Float64() * h,
		Radius: config.MinRadius + rng.Float64()*(config.MaxRadius-config.MinRadius),
		VX:     rng.Float64()*2*config.MaxSpeed - config.MaxSpeed,
		VY:     rng.Float64()*2*config.MaxSpeed - config.MaxSpeed,
		Color: color.NRGBA{
			R: uint8(rng.Float64() * 255),
			G: uint8(rng.Float64() * 255),
			B: uint8(rng.Float64() * 255),
			A: opacity(config.ColorAlpha),
		},
	}
}

// advance moves the particle one frame and negates each velocity component
// whose coordinate ended up outside [0,w]x[0,h]. A particle left outside by a
// shrinking viewport keeps flipping in place.
func (p *Particle) advance(w, h float64) {
	p.X += p.VX
	p.Y += p.VY

	if p.X < 0 || p.X > w {
		p.VX = -p.VX
	}
	if p.Y < 0 || p.Y > h {
		p.VY = -p.VY
	}
}

// opacity converts a [0,1] alpha to an 8-bit channel, truncating.
func opacity(a float64) uint8 {
	return uint8(a * 255)
}
