package render

import (
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/landing-fx/internal/particles"
)

func TestSnapshotDrawsCircle(t *testing.T) {
	s := NewSnapshot(40, 40, color.Black)
	s.Clear()
	s.FillCircle(20, 20, 5, color.NRGBA{R: 255, A: 255})

	r, g, b, _ := s.Image().At(20, 20).RGBA()
	if r>>8 < 200 || g>>8 > 10 || b>>8 > 10 {
		t.Fatalf("center pixel = (%d,%d,%d), want red", r>>8, g>>8, b>>8)
	}
	r, _, _, _ = s.Image().At(2, 2).RGBA()
	if r != 0 {
		t.Fatalf("corner pixel not background")
	}
}

func TestRenderSnapshotWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "field.png")

	err := RenderSnapshot(path, SnapshotOptions{Width: 200, Height: 120, Particles: 30, Frames: 5, Seed: 1})
	if err != nil {
		t.Fatalf("RenderSnapshot: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("empty png")
	}
}

func TestRenderSnapshotRejectsEmptyViewport(t *testing.T) {
	err := RenderSnapshot(filepath.Join(t.TempDir(), "x.png"), SnapshotOptions{Width: 0, Height: 10, Particles: 1})
	if !errors.Is(err, particles.ErrEmptyViewport) {
		t.Fatalf("err = %v, want ErrEmptyViewport", err)
	}
}

func TestCellLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           int
	}{
		{"point", 3, 3, 3, 3, 1},
		{"horizontal", 0, 0, 4, 0, 5},
		{"vertical reversed", 2, 5, 2, 1, 5},
		{"diagonal", 0, 0, 3, 3, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := cellLine(tt.x0, tt.y0, tt.x1, tt.y1)
			if len(cells) != tt.want {
				t.Fatalf("len = %d, want %d (%v)", len(cells), tt.want, cells)
			}
			last := cells[len(cells)-1]
			if last != [2]int{tt.x1, tt.y1} {
				t.Fatalf("last cell = %v, want (%d,%d)", last, tt.x1, tt.y1)
			}
		})
	}
}

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func TestTerminalSizeInFieldUnits(t *testing.T) {
	surface := NewTerminal(newSimScreen(t, 10, 4))

	w, h := surface.Size()
	if w != 80 || h != 64 {
		t.Fatalf("size = %fx%f, want 80x64", w, h)
	}
}

func TestTerminalLinksSkipParticleCells(t *testing.T) {
	surface := NewTerminal(newSimScreen(t, 10, 2))
	surface.Clear()
	surface.FillCircle(4, 4, 3, color.White)

	if !surface.occupied[0] {
		t.Fatal("particle cell not marked occupied")
	}
	surface.StrokeLine(4, 4, 76, 4, 0.5, color.White)
	surface.Clear()
	if surface.occupied[0] {
		t.Fatal("clear did not reset occupancy")
	}
}

func TestTerminalResizeEvent(t *testing.T) {
	screen := newSimScreen(t, 10, 4)
	surface := NewTerminal(screen)
	field := particles.NewField(80, 64, 0, nil)

	screen.SetSize(20, 5)
	if quit := handleTerminalEvent(tcell.NewEventResize(20, 5), screen, surface, field); quit {
		t.Fatal("resize reported quit")
	}
	if w, h := field.Size(); w != 160 || h != 80 {
		t.Fatalf("field size = %fx%f, want 160x80", w, h)
	}
}

func TestRunOnStopsWithContext(t *testing.T) {
	screen := newSimScreen(t, 20, 6)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := runOn(ctx, screen, 10, 1, 200)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}
