package fx

import (
	"image/color"
	"math/rand"
	"testing"
	"time"
)

func TestCounterRollsUpOnce(t *testing.T) {
	c := NewCounter("Users", 1500, 2*time.Second)

	c.Advance(time.Second)
	if c.Value() != 0 {
		t.Fatalf("value before start = %d, want 0", c.Value())
	}

	if !c.Start() {
		t.Fatal("first Start should report true")
	}
	c.Advance(time.Second)
	if c.Value() != 750 {
		t.Fatalf("value at half way = %d, want 750", c.Value())
	}
	if c.Start() {
		t.Fatal("second Start should be ignored")
	}
	c.Advance(5 * time.Second)
	if c.Value() != 1500 || c.Progress() != 1 {
		t.Fatalf("final value = %d progress = %f", c.Value(), c.Progress())
	}
}

func TestModalCountdown(t *testing.T) {
	m := NewModal()

	if m.Advance(999 * time.Millisecond) {
		t.Fatal("closed too early")
	}
	if m.State() != ModalWaiting || m.Remaining() != 5 {
		t.Fatalf("state=%d remaining=%d", m.State(), m.Remaining())
	}

	m.Advance(time.Millisecond)
	if m.State() != ModalCounting {
		t.Fatalf("state = %d, want counting after the delay", m.State())
	}

	m.Advance(2 * time.Second)
	if m.Remaining() != 3 {
		t.Fatalf("remaining = %d, want 3", m.Remaining())
	}
	if s := m.Scale(); s < 1.19 || s > 1.21 {
		t.Fatalf("scale = %f, want 1.2", s)
	}

	m.Advance(3 * time.Second)
	if m.State() != ModalClosing || m.Remaining() != 0 {
		t.Fatalf("state=%d remaining=%d, want closing at 0", m.State(), m.Remaining())
	}
	if !m.Advance(500 * time.Millisecond) {
		t.Fatal("expected hide after close animation")
	}
	if m.Visible() {
		t.Fatal("modal still visible")
	}
}

func TestModalManualClose(t *testing.T) {
	m := NewModal()
	m.Close()
	if m.State() != ModalClosing {
		t.Fatalf("state = %d, want closing", m.State())
	}
	m.Advance(250 * time.Millisecond)
	if p := m.CloseProgress(); p != 0.5 {
		t.Fatalf("close progress = %f, want 0.5", p)
	}
	m.Advance(250 * time.Millisecond)
	if m.Visible() {
		t.Fatal("modal still visible")
	}
	m.Close()
	if m.State() != ModalHidden {
		t.Fatal("close reopened a hidden modal")
	}
}

func TestTypewriter(t *testing.T) {
	tw := NewTypewriter("Hola", 100*time.Millisecond)

	tw.Advance(0)
	if tw.Text() != "H" {
		t.Fatalf("text = %q, want H", tw.Text())
	}
	tw.Advance(250 * time.Millisecond)
	if tw.Text() != "Hol" {
		t.Fatalf("text = %q, want Hol", tw.Text())
	}
	tw.Advance(time.Second)
	if !tw.Done() || tw.Text() != "Hola" {
		t.Fatalf("text = %q done = %v", tw.Text(), tw.Done())
	}
}

func TestTypewriterRunes(t *testing.T) {
	tw := NewTypewriter("¡Sí!", 10*time.Millisecond)
	tw.Advance(10 * time.Millisecond)
	if tw.Text() != "¡S" {
		t.Fatalf("text = %q", tw.Text())
	}
}

func TestBallPauseFreezes(t *testing.T) {
	b := NewBall(rand.New(rand.NewSource(1)))
	b.Advance(time.Second)
	h := b.Height()
	if h <= 0 || h > 1 {
		t.Fatalf("height = %f", h)
	}

	b.TogglePause()
	b.Advance(time.Second)
	if b.Height() != h {
		t.Fatal("paused ball moved")
	}
	if s := b.ShadowScale(); s < 0.5 || s > 1 {
		t.Fatalf("shadow scale = %f", s)
	}
}

func TestBallColorFromPalette(t *testing.T) {
	p, s, a := color.RGBA{R: 1}, color.RGBA{G: 1}, color.RGBA{B: 1}
	b := NewBall(rand.New(rand.NewSource(2)))
	for i := 0; i < 10; i++ {
		b.Advance(2 * time.Second)
		c := b.Color(p, s, a)
		if c != p && c != s && c != a {
			t.Fatalf("color %v not from palette", c)
		}
	}
}
