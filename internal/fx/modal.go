package fx

import (
	"time"

	"github.com/iburimskiy/landing-fx/internal/config"
)

// ModalState is the lifecycle of the welcome modal.
type ModalState int

const (
	ModalWaiting ModalState = iota // shown, countdown not yet running
	ModalCounting
	ModalClosing
	ModalHidden
)

// Modal is the welcome dialog. It counts down from config.CountdownStart
// once per second after an initial delay, then slides out and hides.
type Modal struct {
	state     ModalState
	remaining int
	clock     time.Duration
}

func NewModal() *Modal {
	return &Modal{state: ModalWaiting, remaining: config.CountdownStart}
}

func (m *Modal) State() ModalState { return m.state }
func (m *Modal) Remaining() int { return m.remaining }
func (m *Modal) Visible() bool { return m.state != ModalHidden }

// Scale of the countdown badge: it grows by a tenth per elapsed second.
func (m *Modal) Scale() float64 {
	return 1 + float64(config.CountdownStart-m.remaining)*0.1
}

// CloseProgress is how far the slide-out animation has run, in [0,1].
func (m *Modal) CloseProgress() float64 {
	switch m.state {
	case ModalClosing:
		return float64(m.clock) / float64(config.ModalCloseLength)
	case ModalHidden:
		return 1
	}
	return 0
}

// Close starts the slide-out early. It is a no-op once closing.
func (m *Modal) Close() {
	if m.state == ModalWaiting || m.state == ModalCounting {
		m.state = ModalClosing
		m.clock = 0
	}
}

// Advance runs the modal clock and reports whether the modal became hidden
// during this call.
func (m *Modal) Advance(dt time.Duration) bool {
	m.clock += dt
	for {
		switch m.state {
		case ModalWaiting:
			if m.clock < config.CountdownDelay {
				return false
			}
			m.clock -= config.CountdownDelay
			m.state = ModalCounting
		case ModalCounting:
			if m.clock < time.Second {
				return false
			}
			m.clock -= time.Second
			m.remaining--
			if m.remaining <= 0 {
				m.state = ModalClosing
				m.clock = 0
			}
		case ModalClosing:
			if m.clock < config.ModalCloseLength {
				return false
			}
			m.state = ModalHidden
			return true
		default:
			return false
		}
	}
}
