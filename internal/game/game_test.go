package game

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/faiface/beep"

	"github.com/iburimskiy/landing-fx/internal/audio"
	"github.com/iburimskiy/landing-fx/internal/config"
	"github.com/iburimskiy/landing-fx/internal/prefs"
)

type nullOutput struct{}

func (nullOutput) Init(beep.SampleRate, int) error { return nil }
func (nullOutput) Play(...beep.Streamer) {}
func (nullOutput) Clear() {}
func (nullOutput) Lock() {}
func (nullOutput) Unlock() {}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	t.Setenv("FX_COLOR_SCHEME", "light")
	cfg := config.Config{Width: 800, Height: 600, TPS: 60, Particles: 20, Seed: 7}
	g, err := New(cfg, prefs.NewMemStore(), audio.NewPlayer(nullOutput{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestNewBuildsScene(t *testing.T) {
	g := newTestGame(t)
	if g.field.Len() != 20 {
		t.Fatalf("particles = %d, want 20", g.field.Len())
	}
	if g.tick != time.Second/60 {
		t.Fatalf("tick = %v", g.tick)
	}
	if !g.modal.Visible() {
		t.Fatal("welcome modal should start visible")
	}
	for _, c := range g.counters {
		if c.Started() {
			t.Fatalf("counter %s started before the modal closed", c.Label)
		}
	}
}

func TestLayoutResizesField(t *testing.T) {
	g := newTestGame(t)
	w, h := g.Layout(1200, 700)
	if w != 1200 || h != 700 {
		t.Fatalf("layout = %dx%d", w, h)
	}
	if fw, fh := g.field.Size(); fw != 1200 || fh != 700 {
		t.Fatalf("field bounds = %vx%v", fw, fh)
	}
}

func TestRevealCountersOnce(t *testing.T) {
	g := newTestGame(t)
	g.closeModal()
	if g.modal.Advance(config.ModalCloseLength) {
		g.revealCounters()
	}
	for _, c := range g.counters {
		if !c.Started() {
			t.Fatalf("counter %s not started", c.Label)
		}
	}
}

func TestToastsExpire(t *testing.T) {
	g := newTestGame(t)
	g.toasts = nil
	g.pushToasts([]string{"Ocean theme"})

	g.ageToasts(toastFade / 2)
	if a := g.toasts[0].alpha(); a <= 0 || a >= 1 {
		t.Fatalf("alpha while fading in = %f", a)
	}
	g.ageToasts(config.ToastLifetime / 2)
	if a := g.toasts[0].alpha(); a != 1 {
		t.Fatalf("alpha mid-life = %f", a)
	}
	g.ageToasts(config.ToastLifetime)
	if len(g.toasts) != 0 {
		t.Fatalf("toasts = %v, want none after the lifetime", g.toasts)
	}
}

func TestOpenFile(t *testing.T) {
	g := newTestGame(t)

	g.selectFile = func() (string, error) { return "", nil }
	g.openFile()
	if g.player.Loading() || g.lastErr != nil {
		t.Fatal("cancelled dialog should do nothing")
	}

	boom := errors.New("no display")
	g.selectFile = func() (string, error) { return "", boom }
	g.openFile()
	if !errors.Is(g.lastErr, boom) {
		t.Fatalf("lastErr = %v", g.lastErr)
	}

	g.selectFile = func() (string, error) { return "song.ogg", nil }
	g.openFile()
	if g.lastErr != nil {
		t.Fatal("a new pick clears the previous error")
	}
	deadline := time.Now().Add(2 * time.Second)
	var err error
	for g.player.Loading() && time.Now().Before(deadline) {
		err = g.player.Poll()
		time.Sleep(time.Millisecond)
	}
	if !errors.Is(err, audio.ErrUnsupportedFormat) {
		t.Fatalf("poll err = %v", err)
	}
}

func TestPanelGeometry(t *testing.T) {
	g := newTestGame(t)
	button := g.buttonRect()
	if button.y != float64(600-(config.WindowHeight-config.ButtonY)) {
		t.Fatalf("button y = %v", button.y)
	}
	for i := range g.cards {
		r := g.cardRect(i)
		if r.y < g.cardsArea().y || r.y+r.h > button.y {
			t.Fatalf("card %d %+v overlaps the audio panel", i, r)
		}
	}
	if g.resultAt(int(g.resultRect(0).x)+5, int(g.resultRect(0).y)+5) != -1 {
		t.Fatal("hidden results should not be clickable")
	}
	g.search.Type([]rune("theme")...)
	r := g.resultRect(0)
	if got := g.resultAt(int(r.x)+5, int(r.y)+5); got != 0 {
		t.Fatalf("resultAt = %d, want 0", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{61 * time.Second, "01:01"},
		{12*time.Minute + 5*time.Second, "12:05"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestRect(t *testing.T) {
	r := rect{x: 20, y: 10, w: 100, h: 20}
	if !r.contains(20, 10) || !r.contains(120, 30) || r.contains(121, 15) {
		t.Fatal("contains edges")
	}
	if r.fraction(70) != 0.5 || r.fraction(0) != 0 || r.fraction(500) != 1 {
		t.Fatal("fraction")
	}
	s := r.scaled(2)
	if s != (rect{x: -30, y: 0, w: 200, h: 40}) {
		t.Fatalf("scaled = %+v", s)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("a long track name.mp3", 10); got != "a long ..." {
		t.Fatalf("got %q", got)
	}
	if got := truncate("ünïcödé", 3); got != "ünï" {
		t.Fatalf("got %q", got)
	}
}

func TestWrap(t *testing.T) {
	got := wrap("play pause and seek the track", 10)
	want := []string{"play pause", "and seek", "the track"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("wrap = %q, want %q", got, want)
	}
	if got := wrap("abcdefghijk", 4); !reflect.DeepEqual(got, []string{"abcd", "efgh", "ijk"}) {
		t.Fatalf("long word = %q", got)
	}
	if wrap("anything", 0) != nil {
		t.Fatal("zero width")
	}
}

func TestHsvToRgb(t *testing.T) {
	tests := []struct {
		h       float64
		r, g, b uint8
	}{
		{0, 255, 0, 0},
		{120, 0, 255, 0},
		{240, 0, 0, 255},
		{-120, 0, 0, 255},
		{360, 255, 0, 0},
	}
	for _, tt := range tests {
		r, g, b := hsvToRgb(tt.h, 1, 1)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("hsvToRgb(%v) = %d,%d,%d", tt.h, r, g, b)
		}
	}
}
