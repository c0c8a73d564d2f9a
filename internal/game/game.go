package game

import (
	"log"
	"math/rand"
	"time"

	"github.com/aquilax/go-perlin"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/landing-fx/internal/audio"
	"github.com/iburimskiy/landing-fx/internal/config"
	"github.com/iburimskiy/landing-fx/internal/fx"
	"github.com/iburimskiy/landing-fx/internal/particles"
	"github.com/iburimskiy/landing-fx/internal/prefs"
	"github.com/iburimskiy/landing-fx/internal/search"
	"github.com/iburimskiy/landing-fx/internal/theme"
)

// Title is typed out at the top of the page.
const Title = "Welcome to the Particle Landing"

type toast struct {
	message string
	age     time.Duration
}

// Game is the ebiten game: the particle backdrop with the page widgets
// layered on top.
type Game struct {
	width, height int
	tick          time.Duration
	time          float64

	field  *particles.Field
	player *audio.Player
	themes *theme.Manager
	search *search.Box
	cards  []search.Card

	counters []*fx.Counter
	modal    *fx.Modal
	title    *fx.Typewriter
	ball     *fx.Ball
	noise    *perlin.Perlin

	toasts         []toast
	sinceThemePoll time.Duration

	// input state
	buttonHovered       bool
	buttonPressed       bool
	progressBarHovered  bool
	progressBarDragging bool
	runes               []rune

	selectFile func() (string, error)
	scratch    *ebiten.Image

	lastErr error
}

// New builds the scene. store persists theme flags; player may be shared
// with the caller so a track can be preloaded.
func New(cfg config.Config, store prefs.Store, player *audio.Player) (*Game, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	tps := cfg.TPS
	if tps <= 0 {
		tps = config.TPS
	}

	themes := theme.NewManager(store, theme.EnvDetector{})
	if err := themes.Load(); err != nil {
		return nil, err
	}

	catalog := search.NewCatalog(search.DefaultCards)
	g := &Game{
		width:  cfg.Width,
		height: cfg.Height,
		tick:   time.Second / time.Duration(tps),
		field:  particles.NewField(float64(cfg.Width), float64(cfg.Height), cfg.Particles, rng),
		player: player,
		themes: themes,
		search: search.NewBox(catalog),
		cards:  catalog.Cards(),
		counters: []*fx.Counter{
			fx.NewCounter("Users", 1500, config.CounterDuration),
			fx.NewCounter("Projects", 320, config.CounterDuration),
			fx.NewCounter("Countries", 45, config.CounterDuration),
		},
		modal:      fx.NewModal(),
		title:      fx.NewTypewriter(Title, config.TypewriterDelay),
		ball:       fx.NewBall(rng),
		noise:      perlin.NewPerlin(2, 2, 3, seed),
		selectFile: selectAudioFile,
	}
	g.pushToasts(themes.Notifications())
	return g, nil
}

func (g *Game) Update() error {
	if err := g.handleInput(); err != nil {
		return err
	}

	dt := g.tick
	g.time += dt.Seconds()
	g.field.Step()

	if g.modal.Advance(dt) {
		g.revealCounters()
	}
	for _, c := range g.counters {
		c.Advance(dt)
	}
	g.title.Advance(dt)
	g.ball.Advance(dt)
	g.search.Advance(dt)

	g.sinceThemePoll += dt
	if g.sinceThemePoll >= config.SystemThemePoll {
		g.sinceThemePoll = 0
		g.setErr(g.themes.Poll())
	}
	g.pushToasts(g.themes.Notifications())
	g.ageToasts(dt)

	g.setErr(g.player.Poll())
	g.player.UpdateLevels()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)
	g.drawField(screen)
	g.drawTitle(screen)
	g.drawCounters(screen)
	g.drawCards(screen)
	g.drawBall(screen)
	g.drawPlayer(screen)
	g.drawSearch(screen)
	g.drawToasts(screen)
	g.drawModal(screen)
	g.drawStatus(screen)
}

// Layout follows the window size; the particle bounds move with it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.field.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Close releases the audio device.
func (g *Game) Close() {
	g.player.Close()
}

func (g *Game) revealCounters() {
	for _, c := range g.counters {
		c.Start()
	}
}

func (g *Game) closeModal() {
	g.modal.Close()
}

func (g *Game) pushToasts(msgs []string) {
	for _, m := range msgs {
		g.toasts = append(g.toasts, toast{message: m})
	}
}

func (g *Game) ageToasts(dt time.Duration) {
	kept := g.toasts[:0]
	for _, t := range g.toasts {
		t.age += dt
		if t.age < config.ToastLifetime {
			kept = append(kept, t)
		}
	}
	g.toasts = kept
}

func (g *Game) setErr(err error) {
	if err == nil {
		return
	}
	log.Printf("error: %v", err)
	g.lastErr = err
}
