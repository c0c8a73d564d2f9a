package theme

import (
	"log"

	"github.com/pkg/errors"

	"github.com/iburimskiy/landing-fx/internal/prefs"
)

// Persisted flag keys.
const (
	KeySelected     = "selectedTheme"
	KeyAuto         = "autoThemeEnabled"
	KeyHighContrast = "highContrastEnabled"
)

var messages = map[Name]string{
	Default: "Default theme",
	Dark:    "True dark mode",
	Nature:  "Nature theme",
	Sunset:  "Sunset theme",
	Ocean:   "Ocean theme",
}

// Manager owns the theme state: the active theme, auto mode, the last seen
// system preference and the high-contrast flag. Changes are persisted to the
// store and announced through Notifications.
type Manager struct {
	store    prefs.Store
	detector Detector

	current      Name
	auto         bool
	system       Name
	highContrast bool

	pending []string
}

func NewManager(store prefs.Store, detector Detector) *Manager {
	if detector == nil {
		detector = EnvDetector{}
	}
	return &Manager{store: store, detector: detector, current: Default, system: Default}
}

// Load restores the saved theme, auto mode and high-contrast flag.
func (m *Manager) Load() error {
	if saved, ok := m.store.Get(KeySelected); ok {
		if n, err := Parse(saved); err == nil {
			m.current = n
		} else {
			log.Printf("ignoring saved theme: %v", err)
		}
	}

	m.system = m.detector.SystemPreference()

	if v, _ := m.store.Get(KeyAuto); v == "true" {
		m.auto = true
		if err := m.applySystem(); err != nil {
			return err
		}
	}

	if v, _ := m.store.Get(KeyHighContrast); v == "true" {
		m.highContrast = true
	}
	return nil
}

func (m *Manager) Current() Name { return m.current }
func (m *Manager) Auto() bool { return m.auto }
func (m *Manager) System() Name { return m.system }
func (m *Manager) HighContrast() bool { return m.highContrast }
func (m *Manager) Palette() Palette { return PaletteFor(m.current, m.highContrast) }

// Change switches theme. A manual change (fromSystem false) turns auto mode
// off first.
func (m *Manager) Change(n Name, fromSystem bool) error {
	if _, ok := palettes[n]; !ok {
		return errors.Wrapf(ErrUnknownTheme, "%q", n)
	}

	if !fromSystem && m.auto {
		m.auto = false
		if err := m.store.Set(KeyAuto, "false"); err != nil {
			return err
		}
		m.notify("Auto mode disabled")
	}

	m.current = n
	if err := m.store.Set(KeySelected, string(n)); err != nil {
		return err
	}

	if !fromSystem {
		m.notify(messages[n])
	}
	return nil
}

// SetAuto turns automatic theme selection on or off. Turning it off restores
// the last saved theme.
func (m *Manager) SetAuto(on bool) error {
	m.auto = on
	v := "false"
	if on {
		v = "true"
	}
	if err := m.store.Set(KeyAuto, v); err != nil {
		return err
	}

	if on {
		m.system = m.detector.SystemPreference()
		return m.applySystem()
	}

	m.notify("Manual mode enabled")
	m.current = Default
	if saved, ok := m.store.Get(KeySelected); ok {
		if n, err := Parse(saved); err == nil {
			m.current = n
		}
	}
	return nil
}

// SystemChanged records a new system preference and follows it when auto
// mode is on.
func (m *Manager) SystemChanged(pref Name) error {
	m.system = pref
	if !m.auto {
		return nil
	}
	return m.applySystem()
}

// Poll asks the detector for the current preference and reacts to changes.
func (m *Manager) Poll() error {
	if pref := m.detector.SystemPreference(); pref != m.system {
		return m.SystemChanged(pref)
	}
	return nil
}

// ToggleHighContrast flips the high-contrast flag. The flag is stored as
// "true" or removed.
func (m *Manager) ToggleHighContrast() error {
	m.highContrast = !m.highContrast
	if m.highContrast {
		return m.store.Set(KeyHighContrast, "true")
	}
	return m.store.Remove(KeyHighContrast)
}

// Notifications returns and clears the pending notification messages.
func (m *Manager) Notifications() []string {
	out := m.pending
	m.pending = nil
	return out
}

func (m *Manager) applySystem() error {
	if !m.auto {
		return nil
	}
	if err := m.Change(m.system, true); err != nil {
		return err
	}
	label := "Light"
	if m.system == Dark {
		label = "Dark"
	}
	m.notify("Auto mode: " + label)
	return nil
}

func (m *Manager) notify(msg string) {
	m.pending = append(m.pending, msg)
}
