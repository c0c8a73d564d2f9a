package game

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"
)

// hsvToRgb converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToRgb(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// withAlpha scales a straight-alpha colour's opacity by a in [0,1].
func withAlpha(c color.RGBA, a float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A) * clamp01(a))}
}

// shade moves each channel by delta, saturating at 0 and 255.
func shade(c color.RGBA, delta float64) color.RGBA {
	adj := func(v uint8) uint8 {
		return uint8(math.Max(0, math.Min(255, float64(v)+delta)))
	}
	return color.RGBA{R: adj(c.R), G: adj(c.G), B: adj(c.B), A: c.A}
}

type rect struct {
	x, y, w, h float64
}

func (r rect) contains(x, y int) bool {
	fx, fy := float64(x), float64(y)
	return fx >= r.x && fx <= r.x+r.w && fy >= r.y && fy <= r.y+r.h
}

// fraction is the horizontal position of x inside r, clamped to [0,1].
func (r rect) fraction(x int) float64 {
	if r.w <= 0 {
		return 0
	}
	return clamp01((float64(x) - r.x) / r.w)
}

// truncate shortens s to at most n runes, ending with "..." when cut.
func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	if n <= 3 {
		return string(rs[:n])
	}
	return string(rs[:n-3]) + "..."
}

// scaled grows r by s around its centre.
func (r rect) scaled(s float64) rect {
	w, h := r.w*s, r.h*s
	return rect{x: r.x - (w-r.w)/2, y: r.y - (h-r.h)/2, w: w, h: h}
}

// wrap breaks s into lines of at most n runes at spaces. Words longer than
// n are cut.
func wrap(s string, n int) []string {
	if n <= 0 {
		return nil
	}
	var lines []string
	var line []rune
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		for len(w) > n {
			if len(line) > 0 {
				lines = append(lines, string(line))
				line = line[:0]
			}
			lines = append(lines, string(w[:n]))
			w = w[n:]
		}
		switch {
		case len(line) == 0:
			line = append(line, w...)
		case len(line)+1+len(w) <= n:
			line = append(append(line, ' '), w...)
		default:
			lines = append(lines, string(line))
			line = append(line[:0], w...)
		}
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}
