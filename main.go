package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"

	"github.com/iburimskiy/landing-fx/internal/audio"
	"github.com/iburimskiy/landing-fx/internal/config"
	"github.com/iburimskiy/landing-fx/internal/game"
	"github.com/iburimskiy/landing-fx/internal/prefs"
	"github.com/iburimskiy/landing-fx/internal/render"
	"github.com/iburimskiy/landing-fx/internal/search"
	"github.com/iburimskiy/landing-fx/internal/theme"
)

var (
	modeFlag      = flag.String("mode", "window", "Front end: window, term or snapshot")
	particlesFlag = flag.Int("particles", 0, "Number of particles (default from FX_PARTICLES or 100)")
	seedFlag      = flag.Int64("seed", 0, "Random seed, 0 picks one")
	framesFlag    = flag.Int("frames", 120, "Frames to simulate before a snapshot is saved")
	outFlag       = flag.String("out", "snapshot.png", "Snapshot output path")
	audioFlag     = flag.String("audio", "", "Track to load on start")
	searchFlag    = flag.String("search", "", "Print the feature cards matching a query and exit")
	debugFlag     = flag.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName)
)

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		log.Printf("fatal: %v", err)
		fmt.Fprintf(os.Stderr, "landing-fx: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *searchFlag != "" {
		fmt.Println(search.Format(search.NewCatalog(search.DefaultCards).Filter(*searchFlag)))
		return nil
	}

	cfg := config.Load()
	if *particlesFlag > 0 {
		cfg.Particles = *particlesFlag
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	if *audioFlag != "" {
		cfg.AudioPath = *audioFlag
	}

	switch *modeFlag {
	case "window":
		return runWindow(cfg)
	case "term":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err := render.RunTerminal(ctx, cfg.Particles, cfg.Seed, cfg.TPS)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	case "snapshot":
		err := render.RenderSnapshot(*outFlag, render.SnapshotOptions{
			Width:      cfg.Width,
			Height:     cfg.Height,
			Particles:  cfg.Particles,
			Frames:     *framesFlag,
			Seed:       cfg.Seed,
			Background: theme.PaletteFor(theme.Default, false).Background,
		})
		if err == nil {
			log.Printf("snapshot written to %s", *outFlag)
		}
		return err
	default:
		return errors.Errorf("unknown mode %q", *modeFlag)
	}
}

func runWindow(cfg config.Config) error {
	var store prefs.Store
	fileStore, err := prefs.OpenFile(cfg.PrefsPath)
	if err != nil {
		log.Printf("preferences unavailable, keeping them in memory: %v", err)
		store = prefs.NewMemStore()
	} else {
		store = fileStore
	}

	player := audio.NewPlayer(nil)
	if cfg.AudioPath != "" {
		player.OpenAsync(cfg.AudioPath)
	}

	g, err := game.New(cfg, store, player)
	if err != nil {
		return err
	}
	defer g.Close()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Particle Landing - Space: Play/Pause, /: Search, Esc/Q: Quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
