package particles

import (
	"context"
	"image/color"
	"time"
)

// Surface is the 2-D drawing target the field renders onto.
type Surface interface {
	Clear()
	FillCircle(x, y, r float64, c color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, c color.Color)
	Size() (w, h float64)
}

// Presenter is implemented by surfaces that buffer draw calls and need an
// explicit flush once a frame is complete.
type Presenter interface {
	Present()
}

// Clock paces the frame loop. NextFrame blocks until the next frame is due
// and returns ctx.Err() if the context ends first.
type Clock interface {
	NextFrame(ctx context.Context) error
}

// TickerClock is a Clock backed by a time.Ticker.
type TickerClock struct {
	ticker *time.Ticker
}

func NewTickerClock(fps int) *TickerClock {
	if fps <= 0 {
		fps = 60
	}
	return &TickerClock{ticker: time.NewTicker(time.Second / time.Duration(fps))}
}

func (c *TickerClock) NextFrame(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ticker.C:
		return nil
	}
}

func (c *TickerClock) Stop() { c.ticker.Stop() }
