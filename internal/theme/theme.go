package theme

import (
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Name identifies one of the built-in themes.
type Name string

const (
	Default Name = "default"
	Dark    Name = "dark"
	Nature  Name = "nature"
	Sunset  Name = "sunset"
	Ocean   Name = "ocean"
)

// Names lists the themes in menu order.
var Names = []Name{Default, Dark, Nature, Sunset, Ocean}

var ErrUnknownTheme = errors.New("theme: unknown theme")

// Parse validates a theme name.
func Parse(s string) (Name, error) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := palettes[n]; !ok {
		return "", errors.Wrapf(ErrUnknownTheme, "%q", s)
	}
	return n, nil
}

// Palette is the set of colours a theme paints with.
type Palette struct {
	Background color.RGBA
	Card       color.RGBA
	Text       color.RGBA
	Primary    color.RGBA
	Secondary  color.RGBA
	Accent     color.RGBA
	Border     color.RGBA
}

var palettes = map[Name]Palette{
	Default: {
		Background: color.RGBA{R: 18, G: 22, B: 38, A: 255},
		Card:       color.RGBA{R: 34, G: 40, B: 64, A: 230},
		Text:       color.RGBA{R: 230, G: 232, B: 240, A: 255},
		Primary:    color.RGBA{R: 102, G: 126, B: 234, A: 255},
		Secondary:  color.RGBA{R: 118, G: 75, B: 162, A: 255},
		Accent:     color.RGBA{R: 240, G: 147, B: 251, A: 255},
		Border:     color.RGBA{R: 80, G: 90, B: 130, A: 255},
	},
	Dark: {
		Background: color.RGBA{R: 0, G: 0, B: 0, A: 255},
		Card:       color.RGBA{R: 18, G: 18, B: 18, A: 240},
		Text:       color.RGBA{R: 224, G: 224, B: 224, A: 255},
		Primary:    color.RGBA{R: 187, G: 134, B: 252, A: 255},
		Secondary:  color.RGBA{R: 3, G: 218, B: 198, A: 255},
		Accent:     color.RGBA{R: 207, G: 102, B: 121, A: 255},
		Border:     color.RGBA{R: 51, G: 51, B: 51, A: 255},
	},
	Nature: {
		Background: color.RGBA{R: 16, G: 36, B: 24, A: 255},
		Card:       color.RGBA{R: 30, G: 60, B: 40, A: 230},
		Text:       color.RGBA{R: 232, G: 245, B: 233, A: 255},
		Primary:    color.RGBA{R: 76, G: 175, B: 80, A: 255},
		Secondary:  color.RGBA{R: 139, G: 195, B: 74, A: 255},
		Accent:     color.RGBA{R: 255, G: 193, B: 7, A: 255},
		Border:     color.RGBA{R: 56, G: 100, B: 60, A: 255},
	},
	Sunset: {
		Background: color.RGBA{R: 44, G: 20, B: 32, A: 255},
		Card:       color.RGBA{R: 70, G: 34, B: 48, A: 230},
		Text:       color.RGBA{R: 255, G: 236, B: 224, A: 255},
		Primary:    color.RGBA{R: 255, G: 111, B: 60, A: 255},
		Secondary:  color.RGBA{R: 255, G: 64, B: 129, A: 255},
		Accent:     color.RGBA{R: 255, G: 214, B: 0, A: 255},
		Border:     color.RGBA{R: 120, G: 60, B: 70, A: 255},
	},
	Ocean: {
		Background: color.RGBA{R: 8, G: 28, B: 48, A: 255},
		Card:       color.RGBA{R: 16, G: 48, B: 76, A: 230},
		Text:       color.RGBA{R: 224, G: 247, B: 250, A: 255},
		Primary:    color.RGBA{R: 0, G: 150, B: 199, A: 255},
		Secondary:  color.RGBA{R: 0, G: 180, B: 216, A: 255},
		Accent:     color.RGBA{R: 144, G: 224, B: 239, A: 255},
		Border:     color.RGBA{R: 30, G: 80, B: 110, A: 255},
	},
}

var highContrast = Palette{
	Background: color.RGBA{A: 255},
	Card:       color.RGBA{A: 255},
	Text:       color.RGBA{R: 255, G: 255, B: 255, A: 255},
	Primary:    color.RGBA{R: 255, G: 255, A: 255},
	Secondary:  color.RGBA{G: 255, B: 255, A: 255},
	Accent:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
	Border:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
}

// PaletteFor returns the palette of a theme, or the high-contrast palette
// when that mode is on.
func PaletteFor(n Name, contrast bool) Palette {
	if contrast {
		return highContrast
	}
	if p, ok := palettes[n]; ok {
		return p
	}
	return palettes[Default]
}

// Detector reports the operating environment's colour scheme preference.
type Detector interface {
	SystemPreference() Name
}

// EnvDetector reads FX_COLOR_SCHEME ("dark"/"light") and falls back to the
// terminal's COLORFGBG background.
type EnvDetector struct{}

func (EnvDetector) SystemPreference() Name {
	switch strings.ToLower(os.Getenv("FX_COLOR_SCHEME")) {
	case "dark":
		return Dark
	case "light":
		return Default
	}

	fgbg := os.Getenv("COLORFGBG")
	if i := strings.LastIndex(fgbg, ";"); i >= 0 {
		if bg, err := strconv.Atoi(fgbg[i+1:]); err == nil && (bg <= 6 || bg == 8) {
			return Dark
		}
	}
	return Default
}
