package game

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/iburimskiy/landing-fx/internal/config"
	"github.com/iburimskiy/landing-fx/internal/theme"
)

const glyphWidth = 7

// The audio panel is anchored to the bottom of the window.
func (g *Game) buttonRect() rect {
	y := g.height - (config.WindowHeight - config.ButtonY)
	return rect{x: config.ButtonX, y: float64(y), w: config.ButtonWidth, h: config.ButtonHeight}
}

func (g *Game) progressRect() rect {
	return rect{x: 20, y: float64(g.height - 100), w: float64(g.width - 40), h: 20}
}

func (g *Game) volumeRect() rect {
	b := g.buttonRect()
	return rect{x: float64(g.width - 220), y: b.y + b.h/2 - 6, w: 200, h: 12}
}

func (g *Game) spectrumRect() rect {
	return rect{x: 20, y: float64(g.height - 60), w: float64(g.width - 40), h: 40}
}

// drawText writes s with its top-left corner at (x, y).
func drawText(dst *ebiten.Image, s string, x, y int, clr color.Color) {
	text.Draw(dst, s, basicfont.Face7x13, x, y+basicfont.Face7x13.Ascent, clr)
}

func textWidth(s string) int {
	return len([]rune(s)) * glyphWidth
}

func fillRect(dst *ebiten.Image, r rect, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.x), float32(r.y), float32(r.w), float32(r.h), clr, false)
}

func strokeRect(dst *ebiten.Image, r rect, width float32, clr color.Color) {
	vector.StrokeRect(dst, float32(r.x), float32(r.y), float32(r.w), float32(r.h), width, clr, false)
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	pal := g.themes.Palette()
	g.drawButton(screen, pal)
	g.drawVolume(screen, pal)
	g.drawProgressBar(screen, pal)
	g.drawSpectrum(screen)

	b := g.buttonRect()
	label := "No track - O or the button to open one"
	switch {
	case g.player.Loading():
		g.drawSpinner(screen, b.x+b.w+24, b.y+b.h/2, pal)
		label = "Loading..."
	case g.player.Loaded():
		state := "Paused"
		if g.player.Playing() {
			state = "Playing"
		}
		label = state + " - " + truncate(g.player.Track(), 40)
	}
	drawText(screen, label, int(b.x+b.w)+44, int(b.y+b.h/2)-6, pal.Text)
}

func (g *Game) drawButton(screen *ebiten.Image, pal theme.Palette) {
	r := g.buttonRect()

	var bg color.RGBA
	switch {
	case g.buttonPressed:
		bg = shade(pal.Primary, -40)
	case g.buttonHovered:
		bg = shade(pal.Primary, -20)
	default:
		bg = pal.Primary
	}
	fillRect(screen, r, bg)
	strokeRect(screen, r, 2, pal.Border)

	label := "Open File"
	x := int(r.x) + (int(r.w)-textWidth(label))/2
	y := int(r.y) + (int(r.h)-13)/2
	drawText(screen, label, x, y, color.White)
}

func (g *Game) drawVolume(screen *ebiten.Image, pal theme.Palette) {
	r := g.volumeRect()
	fillRect(screen, r, withAlpha(pal.Card, 0.8))
	level := r
	level.w *= g.player.Volume()
	fillRect(screen, level, pal.Accent)
	strokeRect(screen, r, 1, pal.Border)
	drawText(screen, "Vol", int(r.x)-28, int(r.y)-1, pal.Text)
}

func (g *Game) drawSpinner(screen *ebiten.Image, cx, cy float64, pal theme.Palette) {
	const (
		dots   = 8
		radius = 10
	)
	head := int(g.time*dots) % dots
	for i := 0; i < dots; i++ {
		a := 2 * math.Pi * float64(i) / dots
		age := (head - i + dots) % dots
		alpha := 1 - float64(age)/dots
		x := cx + radius*math.Cos(a)
		y := cy + radius*math.Sin(a)
		vector.DrawFilledCircle(screen, float32(x), float32(y), 2.5, withAlpha(pal.Accent, alpha), true)
	}
}

func (g *Game) drawProgressBar(screen *ebiten.Image, pal theme.Palette) {
	if !g.player.Loaded() || g.player.Duration() == 0 {
		return
	}
	bar := g.progressRect()
	duration := g.player.Duration()
	progress := g.player.Progress()

	fillRect(screen, bar, withAlpha(pal.Card, 0.85))
	strokeRect(screen, bar, 2, pal.Border)

	if progress > 0 {
		fill := bar
		fill.w = progress * bar.w
		hue := (g.time*0.05 + progress*0.5) * 360
		r, gv, b := hsvToRgb(hue, 0.8, 0.9)
		fillRect(screen, fill, color.NRGBA{R: r, G: gv, B: b, A: 180})
	}

	indicatorX := bar.x + progress*bar.w
	indicatorY := bar.y + bar.h/2
	vector.DrawFilledCircle(screen, float32(indicatorX), float32(indicatorY), 7, color.White, true)
	vector.StrokeCircle(screen, float32(indicatorX), float32(indicatorY), 7, 2, pal.Border, true)

	current := formatDuration(g.player.Position())
	total := formatDuration(duration)
	drawText(screen, current, int(bar.x), int(bar.y+bar.h)+4, pal.Text)
	drawText(screen, total, int(bar.x+bar.w)-textWidth(total), int(bar.y+bar.h)+4, pal.Text)

	if !g.progressBarHovered {
		return
	}
	mouseX, mouseY := ebiten.CursorPosition()
	tip := formatDuration(time.Duration(bar.fraction(mouseX) * float64(duration)))
	tipRect := rect{w: float64(textWidth(tip) + 10), h: 20}
	tipRect.x = math.Max(0, math.Min(float64(mouseX)-tipRect.w/2, float64(g.width)-tipRect.w))
	tipRect.y = float64(mouseY - 25)
	fillRect(screen, tipRect, color.RGBA{A: 200})
	strokeRect(screen, tipRect, 1, pal.Border)
	drawText(screen, tip, int(tipRect.x)+5, int(tipRect.y)+3, color.White)
}

// drawSpectrum draws the band levels of whatever is playing.
func (g *Game) drawSpectrum(screen *ebiten.Image) {
	levels := g.player.Levels()
	if !g.player.Loaded() || len(levels) == 0 {
		return
	}
	bar := g.spectrumRect()
	fillRect(screen, bar, color.RGBA{R: 20, G: 25, B: 35, A: 160})

	segment := bar.w / float64(len(levels))
	for i, v := range levels {
		h := math.Max(2, v*(bar.h-6))
		hue := (g.time*0.05 + float64(i)/float64(len(levels))*0.5) * 360
		r, gv, b := hsvToRgb(hue, 0.8, 0.9)
		seg := rect{x: bar.x + float64(i)*segment, y: bar.y + bar.h - h, w: segment - 1, h: h}
		fillRect(screen, seg, color.RGBA{R: r, G: gv, B: b, A: 255})
		if v > 0.3 {
			strokeRect(screen, seg, 1, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(100 * clamp01(v))})
		}
	}
}

// drawStatus prints the key help and the last error along the bottom edge.
func (g *Game) drawStatus(screen *ebiten.Image) {
	status := "Space play/pause  S stop  O open  Up/Down volume  1-5 theme  A auto  C contrast  B ball  / search  Q quit"
	if g.search.Focused() {
		status = "Type to search  Enter pick  Esc close"
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, g.height-16)
}
