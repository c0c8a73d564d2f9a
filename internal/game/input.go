package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/landing-fx/internal/config"
	"github.com/iburimskiy/landing-fx/internal/theme"
)

var themeKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5}

func (g *Game) handleInput() error {
	mouseX, mouseY := ebiten.CursorPosition()
	g.handleMouse(mouseX, mouseY)

	if g.search.Focused() {
		g.handleSearchKeys()
		return nil
	}
	return g.handleKeys()
}

func (g *Game) handleMouse(mouseX, mouseY int) {
	pressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	released := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	// While the modal is up it swallows clicks; its close button is the only
	// target.
	if g.modal.Visible() {
		if pressed && g.modalCloseRect().contains(mouseX, mouseY) {
			g.closeModal()
		}
		return
	}

	button := g.buttonRect()
	g.buttonHovered = button.contains(mouseX, mouseY)
	if g.buttonHovered && pressed {
		g.buttonPressed = true
	}
	if released {
		if g.buttonPressed && g.buttonHovered {
			g.openFile()
		}
		g.buttonPressed = false
	}

	bar := g.progressRect()
	g.progressBarHovered = bar.contains(mouseX, mouseY)
	if g.player.Loaded() && g.player.Duration() > 0 {
		if g.progressBarHovered && pressed {
			g.progressBarDragging = true
			g.setErr(g.player.SeekFraction(bar.fraction(mouseX)))
		} else if g.progressBarDragging && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			// Only seek once the pointer moved more than 1% of the track.
			want := bar.fraction(mouseX)
			if d := want - g.player.Progress(); d > 0.01 || d < -0.01 {
				g.setErr(g.player.SeekFraction(want))
			}
		}
	}
	if released {
		g.progressBarDragging = false
	}

	if vol := g.volumeRect(); pressed && vol.contains(mouseX, mouseY) {
		g.player.SetVolume(vol.fraction(mouseX))
	}

	if !pressed {
		return
	}
	if g.searchRect().contains(mouseX, mouseY) {
		g.search.Focus()
		return
	}
	if i := g.resultAt(mouseX, mouseY); i >= 0 {
		g.search.Select(i)
		return
	}
	g.search.Blur()
}

func (g *Game) handleSearchKeys() {
	g.runes = ebiten.AppendInputChars(g.runes[:0])
	if len(g.runes) > 0 {
		g.search.Type(g.runes...)
	}
	if repeating(ebiten.KeyBackspace) {
		g.search.Backspace()
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		g.search.Select(0)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.search.Blur()
	}
}

func (g *Game) handleKeys() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if g.modal.Visible() {
			g.closeModal()
			return nil
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.setErr(g.player.PlayPause())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.setErr(g.player.Stop())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.openFile()
	}
	if repeating(ebiten.KeyArrowUp) {
		g.player.SetVolume(g.player.Volume() + config.VolumeStep)
	}
	if repeating(ebiten.KeyArrowDown) {
		g.player.SetVolume(g.player.Volume() - config.VolumeStep)
	}

	for i, k := range themeKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.setErr(g.themes.Change(theme.Names[i], false))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.setErr(g.themes.SetAuto(!g.themes.Auto()))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.setErr(g.themes.ToggleHighContrast())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.ball.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySlash) {
		g.search.Focus()
	}
	return nil
}

// openFile shows the file chooser and starts decoding the pick in the
// background.
func (g *Game) openFile() {
	path, err := g.selectFile()
	if err != nil {
		g.setErr(err)
		return
	}
	if path == "" {
		return
	}
	g.lastErr = nil
	g.player.OpenAsync(path)
}

// repeating is true on the first press and then periodically while held.
func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d > 30 && d%4 == 0)
}
