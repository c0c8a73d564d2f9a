package audio

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// tap sits between a track and the output and keeps a copy of the most
// recently played samples for the spectrum display.
type tap struct {
	source beep.Streamer

	mu     sync.RWMutex
	buffer [][2]float64
	next   int
}

func newTap(src beep.Streamer, ringSize int) *tap {
	return &tap{source: src, buffer: make([][2]float64, ringSize)}
}

func (t *tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.source.Stream(samples)
	t.record(samples[:n])
	return n, ok
}

func (t *tap) Err() error { return t.source.Err() }

// record appends played samples to the ring. When more arrive at once than
// the ring holds, only the newest are kept.
func (t *tap) record(played [][2]float64) {
	if len(played) == 0 || len(t.buffer) == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	size := len(t.buffer)
	if len(played) > size {
		played = played[len(played)-size:]
	}
	k := copy(t.buffer[t.next:], played)
	copy(t.buffer, played[k:])
	t.next = (t.next + len(played)) % size
}

// snapshot returns the last n samples, oldest first.
func (t *tap) snapshot(n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n > len(t.buffer) {
		n = len(t.buffer)
	}
	out := make([][2]float64, n)
	idx := t.next - n
	if idx < 0 {
		idx += len(t.buffer)
	}
	for i := range out {
		out[i] = t.buffer[idx]
		idx++
		if idx >= len(t.buffer) {
			idx = 0
		}
	}
	return out
}

// bandLevels splits samples into len(prev) bands and blends each band's
// compressed RMS into prev. Values stay in [0,1] for input in [-1,1].
func bandLevels(samples [][2]float64, prev []float64, smoothing float64) {
	nBands := len(prev)
	if nBands == 0 || len(samples) == 0 {
		return
	}
	segmentSize := len(samples) / nBands
	if segmentSize < 1 {
		segmentSize = 1
	}
	for i := 0; i < nBands; i++ {
		start := i * segmentSize
		if start >= len(samples) {
			break
		}
		end := start + segmentSize
		if end > len(samples) {
			end = len(samples)
		}

		var sumSquares float64
		for _, s := range samples[start:end] {
			mono := (s[0] + s[1]) * 0.5
			sumSquares += mono * mono
		}
		rms := math.Sqrt(sumSquares / float64(end-start))
		prev[i] = smoothing*prev[i] + (1-smoothing)*math.Pow(rms, 0.3)
	}
}
