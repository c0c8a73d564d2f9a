package particles

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/iburimskiy/landing-fx/internal/config"
)

var (
	ErrNoSurface     = errors.New("particles: no drawing surface")
	ErrEmptyViewport = errors.New("particles: viewport has no area")
)

// linkColor is white at LinkAlpha opacity.
var linkColor = color.NRGBA{R: 255, G: 255, B: 255, A: opacity(config.LinkAlpha)}

// Link joins two particles closer than the link distance.
type Link struct {
	A, B int
}

// Field owns a fixed set of particles bouncing inside a width x height
// viewport. It is not safe for concurrent use.
type Field struct {
	width, height float64
	particles     []Particle
}

// NewField seeds n particles uniformly inside the viewport.
func NewField(w, h float64, n int, rng *rand.Rand) *Field {
	f := &Field{
		width:     w,
		height:    h,
		particles: make([]Particle, n),
	}
	for i := range f.particles {
		f.particles[i] = newParticle(rng, w, h)
	}
	return f
}

// NewFieldOn sizes the field from the surface it will draw on.
func NewFieldOn(s Surface, n int, rng *rand.Rand) (*Field, error) {
	if s == nil {
		return nil, ErrNoSurface
	}
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return nil, errors.Wrapf(ErrEmptyViewport, "size %.0fx%.0f", w, h)
	}
	return NewField(w, h, n, rng), nil
}

// Len returns the number of particles.
func (f *Field) Len() int { return len(f.particles) }

// Size returns the current viewport bounds.
func (f *Field) Size() (float64, float64) { return f.width, f.height }

// Particles returns a copy of the current particle state.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Resize changes the bounds used by later steps. Particles keep their
// position and velocity.
func (f *Field) Resize(w, h float64) {
	f.width = w
	f.height = h
}

// Step advances every particle by one frame.
func (f *Field) Step() {
	for i := range f.particles {
		f.particles[i].advance(f.width, f.height)
	}
}

// Links returns every unordered pair closer than the link distance.
func (f *Field) Links() []Link {
	var links []Link
	for i := 0; i < len(f.particles); i++ {
		for j := i + 1; j < len(f.particles); j++ {
			if distance(f.particles[i], f.particles[j]) < config.LinkDistance {
				links = append(links, Link{A: i, B: j})
			}
		}
	}
	return links
}

// Render draws the particles and their proximity links.
func (f *Field) Render(s Surface) {
	for _, p := range f.particles {
		s.FillCircle(p.X, p.Y, p.Radius, p.Color)
	}
	for _, l := range f.Links() {
		a, b := f.particles[l.A], f.particles[l.B]
		s.StrokeLine(a.X, a.Y, b.X, b.Y, config.LinkWidth, linkColor)
	}
}

// Frame clears the surface, steps the field and renders it.
func (f *Field) Frame(s Surface) {
	s.Clear()
	f.Step()
	f.Render(s)
	if p, ok := s.(Presenter); ok {
		p.Present()
	}
}

func distance(a, b Particle) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
