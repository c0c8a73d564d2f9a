package search

import (
	"time"

	"github.com/iburimskiy/landing-fx/internal/config"
)

// Box is the search input with its live results and the highlight pulse of
// the last chosen card.
type Box struct {
	catalog *Catalog

	query   []rune
	focused bool
	results Results

	highlight   int
	highlightAt time.Duration
	now         time.Duration
}

func NewBox(c *Catalog) *Box {
	return &Box{catalog: c, highlight: -1}
}

func (b *Box) Focus() { b.focused = true }
func (b *Box) Focused() bool { return b.focused }
func (b *Box) Query() string { return string(b.query) }
func (b *Box) Results() Results { return b.results }

// Blur hides the results, like clicking outside the box.
func (b *Box) Blur() {
	b.focused = false
	b.results = Results{}
}

// Type appends runes and refilters.
func (b *Box) Type(rs ...rune) {
	b.query = append(b.query, rs...)
	b.refresh()
}

// Backspace drops the last rune and refilters.
func (b *Box) Backspace() {
	if len(b.query) == 0 {
		return
	}
	b.query = b.query[:len(b.query)-1]
	b.refresh()
}

// Select picks the i-th visible result: the query is cleared, results hide
// and the card starts pulsing. It returns the card index, or -1.
func (b *Box) Select(i int) int {
	if !b.results.Visible || i < 0 || i >= len(b.results.Items) {
		return -1
	}
	idx := b.results.Items[i].Index
	b.query = b.query[:0]
	b.results = Results{}
	b.focused = false
	b.highlight = idx
	b.highlightAt = b.now
	return idx
}

// Advance moves the box clock forward.
func (b *Box) Advance(dt time.Duration) { b.now += dt }

// Pulse returns the highlighted card and its scale, 1 -> 1.03 -> 1 over the
// pulse duration. It returns -1 when nothing is pulsing.
func (b *Box) Pulse() (int, float64) {
	if b.highlight < 0 {
		return -1, 1
	}
	t := float64(b.now-b.highlightAt) / float64(config.HighlightPulse)
	if t >= 1 {
		return -1, 1
	}
	if t < 0.5 {
		return b.highlight, 1 + 0.03*(t/0.5)
	}
	return b.highlight, 1 + 0.03*((1-t)/0.5)
}

func (b *Box) refresh() {
	b.results = b.catalog.Filter(string(b.query))
}
