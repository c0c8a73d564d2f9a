package audio

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"

	"github.com/iburimskiy/landing-fx/internal/config"
)

var (
	ErrNothingLoaded     = errors.New("audio: nothing loaded")
	ErrUnsupportedFormat = errors.New("audio: unsupported file type")
)

// Output is the sound device the player mixes into. Play and Clear take the
// device lock themselves and must not be called while holding Lock.
type Output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

type speakerOutput struct{}

func (speakerOutput) Init(sr beep.SampleRate, n int) error { return speaker.Init(sr, n) }
func (speakerOutput) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (speakerOutput) Clear() { speaker.Clear() }
func (speakerOutput) Lock() { speaker.Lock() }
func (speakerOutput) Unlock() { speaker.Unlock() }

// Speaker is the system audio device.
var Speaker Output = speakerOutput{}

type openResult struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	file     io.Closer
	path     string
	err      error
}

// Player plays one track at a time with pause, stop, seek and volume.
// Methods are meant to be called from one goroutine; the output's own
// goroutine only touches the stream chain under Output.Lock.
type Player struct {
	out Output

	file     io.Closer
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	tap      *tap
	track    string

	initDone bool
	playing  bool
	level    float64
	ended    atomic.Bool
	levels   []float64

	// decode opens and decodes a file; decodeFile unless replaced in tests.
	decode func(path string) (beep.StreamSeekCloser, beep.Format, io.Closer, error)

	mu         sync.Mutex
	loading    bool
	pending    *openResult
	generation int
}

func NewPlayer(out Output) *Player {
	if out == nil {
		out = Speaker
	}
	return &Player{
		out:    out,
		level:  1,
		levels: make([]float64, config.SpectrumBands),
		decode: decodeFile,
	}
}

func (p *Player) Loaded() bool { return p.streamer != nil }
func (p *Player) Playing() bool { return p.playing }
func (p *Player) Volume() float64 { return p.level }
func (p *Player) Track() string { return p.track }
func (p *Player) Levels() []float64 { return p.levels }

// Loading is true from the start of an open until the track can play.
func (p *Player) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Open decodes path and loads it, paused.
func (p *Player) Open(path string) error {
	p.setLoading(true)
	defer p.setLoading(false)

	streamer, format, f, err := p.decode(path)
	if err != nil {
		return err
	}
	if err := p.Load(streamer, format, f); err != nil {
		return err
	}
	p.track = filepath.Base(path)
	return nil
}

// OpenAsync decodes path on a separate goroutine. Poll finishes the load.
// Only the latest call counts: an earlier decode that is still running or
// waiting for Poll is closed and dropped.
func (p *Player) OpenAsync(path string) {
	p.mu.Lock()
	p.loading = true
	p.generation++
	gen := p.generation
	stale := p.pending
	p.pending = nil
	p.mu.Unlock()
	stale.discard()

	go func() {
		streamer, format, f, err := p.decode(path)
		res := &openResult{streamer: streamer, format: format, file: f, path: path, err: err}

		p.mu.Lock()
		if gen != p.generation {
			p.mu.Unlock()
			res.discard()
			return
		}
		stale := p.pending
		p.pending = res
		p.mu.Unlock()
		stale.discard()
	}()
}

// discard releases a decoded track that will never be loaded.
func (r *openResult) discard() {
	if r == nil || r.err != nil {
		return
	}
	_ = r.streamer.Close()
	closeQuietly(r.file)
}

// Poll completes a finished OpenAsync and returns its error, if any.
func (p *Player) Poll() error {
	p.mu.Lock()
	res := p.pending
	p.pending = nil
	if res != nil {
		p.loading = false
	}
	p.mu.Unlock()

	if res == nil {
		return nil
	}
	if res.err != nil {
		return res.err
	}
	if err := p.Load(res.streamer, res.format, res.file); err != nil {
		return err
	}
	p.track = filepath.Base(res.path)
	return nil
}

// Load replaces the current track with streamer. closer, if not nil, is
// closed together with the streamer.
func (p *Player) Load(streamer beep.StreamSeekCloser, format beep.Format, closer io.Closer) error {
	p.out.Clear()
	p.release()

	if !p.initDone || p.format.SampleRate != format.SampleRate {
		bufferSize := format.SampleRate.N(time.Second / 20)
		if err := p.out.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			closeQuietly(closer)
			p.initDone = false
			return errors.Wrap(err, "init speaker")
		}
		p.initDone = true
	}

	p.streamer = streamer
	p.file = closer
	p.format = format
	p.tap = newTap(streamer, config.VisualRingSize)
	p.ctrl = &beep.Ctrl{Streamer: p.tap, Paused: true}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2}
	p.applyVolume()
	p.playing = false
	p.ended.Store(false)
	for i := range p.levels {
		p.levels[i] = 0
	}

	p.out.Play(p.chain())
	return nil
}

// PlayPause toggles playback. A finished track starts again from the top.
func (p *Player) PlayPause() error {
	if p.streamer == nil {
		return ErrNothingLoaded
	}

	restart := false
	p.out.Lock()
	if p.ended.Load() {
		if err := p.streamer.Seek(0); err != nil {
			p.out.Unlock()
			return errors.Wrap(err, "rewind")
		}
		p.ended.Store(false)
		p.playing = false
		restart = true
	}
	p.playing = !p.playing
	p.ctrl.Paused = !p.playing
	p.out.Unlock()

	if restart {
		p.out.Play(p.chain())
	}
	return nil
}

// Stop pauses and rewinds to the beginning.
func (p *Player) Stop() error {
	if p.streamer == nil {
		return nil
	}
	p.out.Lock()
	p.playing = false
	p.ctrl.Paused = true
	err := p.streamer.Seek(0)
	restart := p.ended.Swap(false)
	p.out.Unlock()

	if restart {
		p.out.Play(p.chain())
	}
	return errors.Wrap(err, "rewind")
}

// SetVolume sets the gain in [0,1]; 0 is silent.
func (p *Player) SetVolume(v float64) {
	p.level = clamp01(v)
	if p.volume == nil {
		return
	}
	p.out.Lock()
	p.applyVolume()
	p.out.Unlock()
}

// SeekFraction jumps to a fraction of the track. It is ignored when nothing
// is loaded.
func (p *Player) SeekFraction(f float64) error {
	if p.streamer == nil {
		return nil
	}
	f = clamp01(f)

	p.out.Lock()
	pos := int(f * float64(p.streamer.Len()))
	if pos >= p.streamer.Len() {
		pos = p.streamer.Len() - 1
	}
	if pos < 0 {
		pos = 0
	}
	err := p.streamer.Seek(pos)
	restart := err == nil && p.ended.Swap(false)
	p.out.Unlock()

	if err != nil {
		return errors.Wrap(err, "seek")
	}
	if restart {
		p.out.Play(p.chain())
	}
	return nil
}

// Position is the current playback time.
func (p *Player) Position() time.Duration {
	if p.streamer == nil {
		return 0
	}
	p.out.Lock()
	defer p.out.Unlock()
	return p.format.SampleRate.D(p.streamer.Position())
}

// Duration is the length of the loaded track.
func (p *Player) Duration() time.Duration {
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// Progress is Position/Duration in [0,1].
func (p *Player) Progress() float64 {
	if p.streamer == nil {
		return 0
	}
	p.out.Lock()
	defer p.out.Unlock()
	n := p.streamer.Len()
	if n == 0 {
		return 0
	}
	return float64(p.streamer.Position()) / float64(n)
}

// UpdateLevels refreshes the spectrum bands from recently played samples.
func (p *Player) UpdateLevels() {
	if p.tap == nil {
		return
	}
	bandLevels(p.tap.snapshot(2048), p.levels, config.SmoothingFactor)
}

// Close stops playback and releases the track.
func (p *Player) Close() {
	p.out.Clear()
	p.release()
}

func (p *Player) chain() beep.Streamer {
	return beep.Seq(p.volume, beep.Callback(func() {
		p.ended.Store(true)
	}))
}

func (p *Player) applyVolume() {
	if p.level <= 0 {
		p.volume.Silent = true
		p.volume.Volume = 0
		return
	}
	p.volume.Silent = false
	p.volume.Volume = math.Log2(p.level)
}

func (p *Player) release() {
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	closeQuietly(p.file)
	p.file = nil
	p.tap = nil
	p.ctrl = nil
	p.volume = nil
	p.playing = false
	p.track = ""
}

func (p *Player) setLoading(v bool) {
	p.mu.Lock()
	p.loading = v
	p.mu.Unlock()
}

func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, io.Closer, error) {
	var decode func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) }
	case ".mp3":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) }
	case ".flac":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(f) }
	default:
		return nil, beep.Format{}, nil, errors.Wrapf(ErrUnsupportedFormat, "%q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, nil, errors.Wrap(err, "open audio")
	}
	streamer, format, err := decode(f)
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, nil, errors.Wrapf(err, "decode %s", filepath.Base(path))
	}
	return streamer, format, f, nil
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

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}
