package particles

import (
	"context"
	"sync/atomic"
)

// Loop drives a Field frame by frame until stopped. Each frame finishes
// before the next one is requested from the clock; late frames advance by a
// single step, there is no time scaling.
type Loop struct {
	field   *Field
	surface Surface
	clock   Clock

	// BeforeFrame, when set, runs on the loop goroutine ahead of each frame.
	BeforeFrame func()

	stopped atomic.Bool
	frames  atomic.Uint64
}

func NewLoop(f *Field, s Surface, c Clock) *Loop {
	return &Loop{field: f, surface: s, clock: c}
}

// Run blocks until Stop is called or ctx is done. A Stop returns nil; a
// cancelled context returns its error.
func (l *Loop) Run(ctx context.Context) error {
	for !l.stopped.Load() {
		if err := l.clock.NextFrame(ctx); err != nil {
			return err
		}
		if l.stopped.Load() {
			break
		}
		if l.BeforeFrame != nil {
			l.BeforeFrame()
		}
		l.field.Frame(l.surface)
		l.frames.Add(1)
	}
	return nil
}

// Stop makes Run return after the frame in progress.
func (l *Loop) Stop() { l.stopped.Store(true) }

// Frames reports how many frames have completed.
func (l *Loop) Frames() uint64 { return l.frames.Load() }
