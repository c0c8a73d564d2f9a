package fx

import "time"

// Typewriter reveals a text one rune at a time.
type Typewriter struct {
	text  []rune
	delay time.Duration
	clock time.Duration
	shown int
}

func NewTypewriter(text string, delay time.Duration) *Typewriter {
	return &Typewriter{text: []rune(text), delay: delay}
}

// Advance moves the clock. The first rune appears immediately.
func (t *Typewriter) Advance(dt time.Duration) {
	if t.Done() {
		return
	}
	if t.shown == 0 {
		t.shown = 1
	}
	t.clock += dt
	for t.clock >= t.delay && !t.Done() {
		t.clock -= t.delay
		t.shown++
	}
}

func (t *Typewriter) Text() string { return string(t.text[:t.shown]) }
func (t *Typewriter) Done() bool { return t.shown >= len(t.text) }
