package render

import (
	"context"
	"image/color"
	"math/rand"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/iburimskiy/landing-fx/internal/particles"
)

// Each terminal cell stands for a CellWidth x CellHeight block of the field.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

var linkStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(70, 70, 80))

// Terminal draws the field onto a tcell screen. Links only fill cells that no
// particle occupies.
type Terminal struct {
	screen   tcell.Screen
	cols     int
	rows     int
	occupied []bool
}

func NewTerminal(screen tcell.Screen) *Terminal {
	t := &Terminal{screen: screen}
	t.sync()
	return t
}

func (t *Terminal) sync() {
	t.cols, t.rows = t.screen.Size()
	if n := t.cols * t.rows; cap(t.occupied) < n {
		t.occupied = make([]bool, n)
	} else {
		t.occupied = t.occupied[:n]
	}
}

func (t *Terminal) Clear() {
	t.screen.Clear()
	for i := range t.occupied {
		t.occupied[i] = false
	}
}

func (t *Terminal) FillCircle(x, y, r float64, c color.Color) {
	col, row := cellOf(x, y)
	if !t.inside(col, row) {
		return
	}
	glyph := '•'
	if r >= 2.5 {
		glyph = '●'
	}
	t.screen.SetContent(col, row, glyph, nil, tcell.StyleDefault.Foreground(tcellColor(c)))
	t.occupied[row*t.cols+col] = true
}

func (t *Terminal) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	c0, r0 := cellOf(x0, y0)
	c1, r1 := cellOf(x1, y1)
	for _, p := range cellLine(c0, r0, c1, r1) {
		if !t.inside(p[0], p[1]) || t.occupied[p[1]*t.cols+p[0]] {
			continue
		}
		t.screen.SetContent(p[0], p[1], '·', nil, linkStyle)
	}
}

func (t *Terminal) Size() (float64, float64) {
	return float64(t.cols) * CellWidth, float64(t.rows) * CellHeight
}

func (t *Terminal) Present() { t.screen.Show() }

func (t *Terminal) inside(col, row int) bool {
	return col >= 0 && row >= 0 && col < t.cols && row < t.rows
}

func cellOf(x, y float64) (int, int) {
	return int(x / CellWidth), int(y / CellHeight)
}

// cellLine returns the cells on the segment between two cells (Bresenham).
func cellLine(x0, y0, x1, y1 int) [][2]int {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	var cells [][2]int
	e := dx + dy
	for {
		cells = append(cells, [2]int{x0, y0})
		if x0 == x1 && y0 == y1 {
			return cells
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func tcellColor(c color.Color) tcell.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// RunTerminal animates a particle field in the terminal until Esc, q or
// Ctrl-C is pressed or ctx is cancelled.
func RunTerminal(ctx context.Context, n int, seed int64, fps int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create terminal screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init terminal screen")
	}
	defer screen.Fini()
	screen.HideCursor()

	return runOn(ctx, screen, n, seed, fps)
}

func runOn(ctx context.Context, screen tcell.Screen, n int, seed int64, fps int) error {
	surface := NewTerminal(screen)
	field, err := particles.NewFieldOn(surface, n, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}

	clock := particles.NewTickerClock(fps)
	defer clock.Stop()
	loop := particles.NewLoop(field, surface, clock)

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	loop.BeforeFrame = func() {
		for {
			select {
			case ev := <-events:
				if handleTerminalEvent(ev, screen, surface, field) {
					loop.Stop()
				}
			default:
				return
			}
		}
	}
	return loop.Run(ctx)
}

// handleTerminalEvent applies resizes and reports whether the user asked to
// quit.
func handleTerminalEvent(ev tcell.Event, screen tcell.Screen, surface *Terminal, field *particles.Field) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		screen.Sync()
		surface.sync()
		field.Resize(surface.Size())
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return true
		}
		if ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q') {
			return true
		}
	}
	return false
}
