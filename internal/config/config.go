package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	VisualRingSize  = 8192
	SmoothingFactor = 0.6
	SpectrumBands   = 64

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 32
	ButtonX      = 20
	ButtonY      = 500

	// Particle field
	ParticleCount = 100
	LinkDistance  = 100.0
	MaxSpeed      = 1.5
	MinRadius     = 1.0
	MaxRadius     = 4.0
	ColorAlpha    = 0.7
	LinkAlpha     = 0.1
	LinkWidth     = 0.5

	// Widgets
	CountdownStart   = 5
	CountdownDelay   = time.Second
	CounterDuration  = 2 * time.Second
	TypewriterDelay  = 100 * time.Millisecond
	BallColorPeriod  = 2 * time.Second
	BallSpeed        = 4.0
	ToastLifetime    = 2 * time.Second
	SystemThemePoll  = 2 * time.Second
	VolumeStep       = 0.1
	SearchMinRunes   = 2
	HighlightPulse   = 500 * time.Millisecond
	ModalCloseLength = 500 * time.Millisecond

	TPS = 60
)

// Config holds the runtime settings. Fields left zero fall back to the
// constants above.
type Config struct {
	Width     int
	Height    int
	TPS       int
	Particles int
	Seed      int64
	AudioPath string
	PrefsPath string
}

// Load builds a Config from defaults, an optional .env file and the process
// environment, in that order.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using process environment")
	} else {
		log.Println("Successfully loaded environment variables")
	}

	cfg := Config{
		Width:     envInt("FX_WIDTH", WindowWidth),
		Height:    envInt("FX_HEIGHT", WindowHeight),
		TPS:       envInt("FX_TPS", TPS),
		Particles: envInt("FX_PARTICLES", ParticleCount),
		Seed:      int64(envInt("FX_SEED", 0)),
		AudioPath: os.Getenv("FX_AUDIO"),
		PrefsPath: os.Getenv("FX_PREFS"),
	}
	if cfg.PrefsPath == "" {
		cfg.PrefsPath = DefaultPrefsPath()
	}
	// Every front end seeds from cfg.Seed, so zero is resolved here once.
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg
}

// DefaultPrefsPath is prefs.json under the user config directory, or the
// working directory when that cannot be resolved.
func DefaultPrefsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "prefs.json"
	}
	return filepath.Join(dir, "landing-fx", "prefs.json")
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("ignoring %s=%q: not a non-negative integer", key, v)
		return def
	}
	return n
}
