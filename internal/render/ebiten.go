package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Ebiten adapts an ebiten image to particles.Surface for the duration of one
// Draw call.
type Ebiten struct {
	img *ebiten.Image
	bg  color.Color
}

// NewEbiten wraps img. Clear fills with bg, or makes the image transparent
// when bg is nil.
func NewEbiten(img *ebiten.Image, bg color.Color) *Ebiten {
	return &Ebiten{img: img, bg: bg}
}

func (e *Ebiten) Clear() {
	if e.bg == nil {
		e.img.Clear()
		return
	}
	e.img.Fill(e.bg)
}

func (e *Ebiten) FillCircle(x, y, r float64, c color.Color) {
	vector.DrawFilledCircle(e.img, float32(x), float32(y), float32(r), c, true)
}

func (e *Ebiten) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	vector.StrokeLine(e.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}

func (e *Ebiten) Size() (float64, float64) {
	b := e.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}
