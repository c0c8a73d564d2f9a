package game

import (
	"image/color"
	"math"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/landing-fx/internal/config"
	"github.com/iburimskiy/landing-fx/internal/fx"
	"github.com/iburimskiy/landing-fx/internal/render"
	"github.com/iburimskiy/landing-fx/internal/search"
)

const (
	cardColumns = 3
	cardGap     = 14
	ballColumn  = 160
	ballRadius  = 18
	toastFade   = 300 * time.Millisecond
)

// drawBackground fills the theme colour and lays a slow perlin shimmer over
// it, one band every few pixels.
func (g *Game) drawBackground(screen *ebiten.Image) {
	bg := g.themes.Palette().Background
	screen.Fill(bg)
	const band = 4
	for y := 0; y < g.height; y += band {
		n := g.noise.Noise2D(float64(y)*0.01, g.time*0.15)
		if math.Abs(n) < 0.02 {
			continue
		}
		fillRect(screen, rect{y: float64(y), w: float64(g.width), h: band}, shade(bg, n*24))
	}
}

func (g *Game) drawField(screen *ebiten.Image) {
	g.field.Render(render.NewEbiten(screen, nil))
}

// drawScaled draws s enlarged through an offscreen image.
func (g *Game) drawScaled(dst *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	if g.scratch == nil {
		g.scratch = ebiten.NewImage(512, 16)
	}
	g.scratch.Clear()
	drawText(g.scratch, s, 0, 1, clr)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	dst.DrawImage(g.scratch, op)
}

func (g *Game) drawTitle(screen *ebiten.Image) {
	const scale = 3
	pal := g.themes.Palette()
	s := g.title.Text()
	if !g.title.Done() && int(g.time*2)%2 == 0 {
		s += "_"
	}
	x := (float64(g.width) - float64(textWidth(Title))*scale) / 2
	g.drawScaled(screen, s, math.Max(10, x), 30, scale, pal.Text)
}

func (g *Game) drawCounters(screen *ebiten.Image) {
	pal := g.themes.Palette()
	col := float64(g.width) / float64(len(g.counters))
	for i, c := range g.counters {
		value := strconv.Itoa(c.Value())
		cx := col*float64(i) + col/2
		g.drawScaled(screen, value, cx-float64(textWidth(value)), 90, 2, pal.Primary)
		drawText(screen, c.Label, int(cx)-textWidth(c.Label)/2, 126, pal.Text)
	}
}

func (g *Game) cardsArea() rect {
	top := 190.0
	bottom := g.buttonRect().y - 20
	return rect{x: 20, y: top, w: float64(g.width - 40 - ballColumn), h: math.Max(0, bottom-top)}
}

func (g *Game) cardRect(i int) rect {
	area := g.cardsArea()
	rows := (len(g.cards) + cardColumns - 1) / cardColumns
	w := (area.w - cardGap*(cardColumns-1)) / cardColumns
	h := (area.h - cardGap*float64(rows-1)) / float64(rows)
	return rect{
		x: area.x + float64(i%cardColumns)*(w+cardGap),
		y: area.y + float64(i/cardColumns)*(h+cardGap),
		w: w,
		h: h,
	}
}

func (g *Game) drawCards(screen *ebiten.Image) {
	pal := g.themes.Palette()
	pulsing, scale := g.search.Pulse()
	for i, card := range g.cards {
		r := g.cardRect(i)
		border := pal.Border
		if i == pulsing {
			r = r.scaled(scale)
			border = pal.Accent
		}
		fillRect(screen, r, pal.Card)
		strokeRect(screen, r, 2, border)
		drawText(screen, card.Title, int(r.x)+10, int(r.y)+10, pal.Primary)

		perLine := int(r.w-20) / glyphWidth
		maxLines := int(r.h-40) / 16
		for j, line := range wrap(card.Content, perLine) {
			if j >= maxLines {
				break
			}
			drawText(screen, line, int(r.x)+10, int(r.y)+32+16*j, pal.Text)
		}
	}
}

func (g *Game) drawBall(screen *ebiten.Image) {
	pal := g.themes.Palette()
	area := g.cardsArea()
	cx := float32(float64(g.width) - 20 - ballColumn/2)
	floor := float32(area.y + area.h - 10)
	lift := float32(g.ball.Height() * math.Min(160, area.h-3*ballRadius))

	shadow := float32(ballRadius * g.ball.ShadowScale())
	vector.DrawFilledRect(screen, cx-shadow, floor-3, 2*shadow, 6, color.RGBA{A: 70}, true)
	vector.DrawFilledCircle(screen, cx, floor-ballRadius-lift, ballRadius, g.ball.Color(pal.Primary, pal.Secondary, pal.Accent), true)

	if g.ball.Paused() {
		drawText(screen, "paused", int(cx)-21, int(floor)+6, pal.Text)
	}
}

func (g *Game) searchRect() rect {
	return rect{x: float64(g.width)/2 - 180, y: 150, w: 360, h: 24}
}

func (g *Game) resultRect(i int) rect {
	box := g.searchRect()
	return rect{x: box.x, y: box.y + box.h + float64(i)*22, w: box.w, h: 22}
}

// resultAt returns the visible result under the pointer, or -1.
func (g *Game) resultAt(x, y int) int {
	res := g.search.Results()
	if !res.Visible {
		return -1
	}
	for i := range res.Items {
		if g.resultRect(i).contains(x, y) {
			return i
		}
	}
	return -1
}

func (g *Game) drawSearch(screen *ebiten.Image) {
	pal := g.themes.Palette()
	box := g.searchRect()
	border := pal.Border
	if g.search.Focused() {
		border = pal.Accent
	}
	fillRect(screen, box, pal.Card)
	strokeRect(screen, box, 2, border)

	q := g.search.Query()
	switch {
	case q != "":
		if g.search.Focused() && int(g.time*2)%2 == 0 {
			q += "|"
		}
		drawText(screen, truncate(q, int(box.w-16)/glyphWidth), int(box.x)+8, int(box.y)+5, pal.Text)
	case g.search.Focused():
		drawText(screen, "|", int(box.x)+8, int(box.y)+5, pal.Text)
	default:
		drawText(screen, "Search features... (/)", int(box.x)+8, int(box.y)+5, shade(pal.Text, -90))
	}

	res := g.search.Results()
	if !res.Visible {
		return
	}
	if res.Empty() {
		r := g.resultRect(0)
		fillRect(screen, r, pal.Card)
		drawText(screen, search.NoResults, int(r.x)+8, int(r.y)+4, shade(pal.Text, -60))
		return
	}
	mouseX, mouseY := ebiten.CursorPosition()
	for i, item := range res.Items {
		r := g.resultRect(i)
		bg := pal.Card
		if r.contains(mouseX, mouseY) {
			bg = shade(pal.Card, 30)
		}
		fillRect(screen, r, bg)
		strokeRect(screen, r, 1, pal.Border)
		line := item.Card.Title + " - " + item.Card.Content
		drawText(screen, truncate(line, int(r.w-16)/glyphWidth), int(r.x)+8, int(r.y)+4, pal.Text)
	}
}

func (t toast) alpha() float64 {
	switch {
	case t.age < toastFade:
		return float64(t.age) / float64(toastFade)
	case t.age > config.ToastLifetime-toastFade:
		return float64(config.ToastLifetime-t.age) / float64(toastFade)
	}
	return 1
}

func (g *Game) drawToasts(screen *ebiten.Image) {
	pal := g.themes.Palette()
	for i, t := range g.toasts {
		a := t.alpha()
		w := float64(textWidth(t.message) + 24)
		r := rect{x: float64(g.width) - w - 20, y: 20 + float64(i)*38, w: w, h: 30}
		fillRect(screen, r, withAlpha(pal.Primary, a))
		drawText(screen, t.message, int(r.x)+12, int(r.y)+8, withAlpha(pal.Text, a))
	}
}

// modalBox is the dialog frame, moved up by the slide-out animation.
func (g *Game) modalBox() rect {
	const w, h = 380.0, 200.0
	r := rect{x: (float64(g.width) - w) / 2, y: (float64(g.height) - h) / 2, w: w, h: h}
	r.y -= g.modal.CloseProgress() * (r.y + h)
	return r
}

func (g *Game) modalCloseRect() rect {
	box := g.modalBox()
	return rect{x: box.x + box.w - 30, y: box.y + 6, w: 24, h: 24}
}

func (g *Game) drawModal(screen *ebiten.Image) {
	if !g.modal.Visible() {
		return
	}
	pal := g.themes.Palette()
	fade := 1 - g.modal.CloseProgress()
	fillRect(screen, rect{w: float64(g.width), h: float64(g.height)}, color.NRGBA{A: uint8(140 * fade)})

	box := g.modalBox()
	fillRect(screen, box, pal.Card)
	strokeRect(screen, box, 2, pal.Accent)

	closeBtn := g.modalCloseRect()
	strokeRect(screen, closeBtn, 1, pal.Border)
	drawText(screen, "x", int(closeBtn.x)+9, int(closeBtn.y)+5, pal.Text)

	g.drawScaled(screen, "Welcome!", box.x+24, box.y+24, 2, pal.Text)

	cx, cy := box.x+box.w/2, box.y+110
	n := g.modal.Remaining()
	if g.modal.State() == fx.ModalWaiting || g.modal.State() == fx.ModalCounting {
		r := 22 * g.modal.Scale()
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(r), pal.Primary, true)
		label := strconv.Itoa(n)
		drawText(screen, label, int(cx)-textWidth(label)/2, int(cy)-7, color.White)
	}
	msg := "Closing in " + strconv.Itoa(n) + "s - Enter or Esc to skip"
	drawText(screen, msg, int(cx)-textWidth(msg)/2, int(box.y+box.h)-30, pal.Text)
}
