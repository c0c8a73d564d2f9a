package render

import (
	"image"
	"image/color"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"

	"github.com/iburimskiy/landing-fx/internal/particles"
)

// Snapshot is an offscreen surface backed by a gg context.
type Snapshot struct {
	dc *gg.Context
	bg color.Color
}

func NewSnapshot(w, h int, bg color.Color) *Snapshot {
	return &Snapshot{dc: gg.NewContext(w, h), bg: bg}
}

func (s *Snapshot) Clear() {
	s.dc.SetColor(s.bg)
	s.dc.Clear()
}

func (s *Snapshot) FillCircle(x, y, r float64, c color.Color) {
	s.dc.SetColor(c)
	s.dc.DrawCircle(x, y, r)
	s.dc.Fill()
}

func (s *Snapshot) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width)
	s.dc.DrawLine(x0, y0, x1, y1)
	s.dc.Stroke()
}

func (s *Snapshot) Size() (float64, float64) {
	return float64(s.dc.Width()), float64(s.dc.Height())
}

func (s *Snapshot) Image() image.Image { return s.dc.Image() }

// SavePNG writes the current surface to path, creating parent directories.
func (s *Snapshot) SavePNG(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create snapshot dir")
		}
	}
	return errors.Wrapf(s.dc.SavePNG(path), "save snapshot %s", path)
}

// SnapshotOptions describes a headless render of the particle field.
type SnapshotOptions struct {
	Width, Height int
	Particles     int
	Frames        int
	Seed          int64
	Background    color.Color
}

// RenderSnapshot advances a fresh field opts.Frames frames on an offscreen
// surface and saves the last one to path.
func RenderSnapshot(path string, opts SnapshotOptions) error {
	if opts.Background == nil {
		opts.Background = color.Black
	}
	surface := NewSnapshot(opts.Width, opts.Height, opts.Background)
	field, err := particles.NewFieldOn(surface, opts.Particles, rand.New(rand.NewSource(opts.Seed)))
	if err != nil {
		return err
	}

	frames := opts.Frames
	if frames < 1 {
		frames = 1
	}
	for i := 0; i < frames; i++ {
		field.Frame(surface)
	}
	return surface.SavePNG(path)
}
