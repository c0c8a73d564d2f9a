package theme

import (
	"errors"
	"reflect"
	"testing"

	"github.com/iburimskiy/landing-fx/internal/prefs"
)

type fixedDetector struct{ pref Name }

func (d *fixedDetector) SystemPreference() Name { return d.pref }

func newTestManager(t *testing.T, pref Name, seed map[string]string) (*Manager, *prefs.MemStore, *fixedDetector) {
	t.Helper()
	store := prefs.NewMemStore()
	for k, v := range seed {
		_ = store.Set(k, v)
	}
	d := &fixedDetector{pref: pref}
	m := NewManager(store, d)
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return m, store, d
}

func TestLoadRestoresSavedTheme(t *testing.T) {
	m, _, _ := newTestManager(t, Default, map[string]string{KeySelected: "sunset", KeyHighContrast: "true"})

	if m.Current() != Sunset {
		t.Fatalf("current = %s, want sunset", m.Current())
	}
	if !m.HighContrast() {
		t.Fatal("high contrast not restored")
	}
	if len(m.Notifications()) != 0 {
		t.Fatal("plain load should not notify")
	}
}

func TestLoadWithAutoFollowsSystem(t *testing.T) {
	m, store, _ := newTestManager(t, Dark, map[string]string{KeySelected: "nature", KeyAuto: "true"})

	if !m.Auto() || m.Current() != Dark {
		t.Fatalf("auto=%v current=%s, want auto dark", m.Auto(), m.Current())
	}
	if v, _ := store.Get(KeySelected); v != "dark" {
		t.Fatalf("selectedTheme = %q, want dark", v)
	}
	if got := m.Notifications(); !reflect.DeepEqual(got, []string{"Auto mode: Dark"}) {
		t.Fatalf("notifications = %v", got)
	}
}

func TestManualChangeDisablesAuto(t *testing.T) {
	m, store, _ := newTestManager(t, Dark, map[string]string{KeyAuto: "true"})
	m.Notifications()

	if err := m.Change(Ocean, false); err != nil {
		t.Fatalf("Change: %v", err)
	}

	if m.Auto() {
		t.Fatal("auto still on after manual change")
	}
	if v, _ := store.Get(KeyAuto); v != "false" {
		t.Fatalf("autoThemeEnabled = %q, want false", v)
	}
	want := []string{"Auto mode disabled", "Ocean theme"}
	if got := m.Notifications(); !reflect.DeepEqual(got, want) {
		t.Fatalf("notifications = %v, want %v", got, want)
	}
}

func TestChangeUnknownTheme(t *testing.T) {
	m, _, _ := newTestManager(t, Default, nil)
	if err := m.Change("neon", false); !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("err = %v, want ErrUnknownTheme", err)
	}
	if m.Current() != Default {
		t.Fatalf("current = %s, want default", m.Current())
	}
}

func TestSetAutoOffRestoresSaved(t *testing.T) {
	m, _, _ := newTestManager(t, Dark, map[string]string{KeySelected: "nature"})

	if err := m.SetAuto(true); err != nil {
		t.Fatal(err)
	}
	if m.Current() != Dark {
		t.Fatalf("current = %s, want dark", m.Current())
	}
	if err := m.SetAuto(false); err != nil {
		t.Fatal(err)
	}
	// Auto mode saved its own choice, so that is what comes back.
	if m.Current() != Dark {
		t.Fatalf("current = %s, want dark", m.Current())
	}
	got := m.Notifications()
	if got[len(got)-1] != "Manual mode enabled" {
		t.Fatalf("last notification = %q", got[len(got)-1])
	}
}

func TestPollFollowsSystemOnlyInAuto(t *testing.T) {
	m, _, d := newTestManager(t, Default, nil)

	d.pref = Dark
	if err := m.Poll(); err != nil {
		t.Fatal(err)
	}
	if m.Current() != Default || m.System() != Dark {
		t.Fatalf("manual mode followed system: current=%s system=%s", m.Current(), m.System())
	}

	if err := m.SetAuto(true); err != nil {
		t.Fatal(err)
	}
	d.pref = Default
	if err := m.Poll(); err != nil {
		t.Fatal(err)
	}
	if m.Current() != Default {
		t.Fatalf("current = %s, want default after system switched to light", m.Current())
	}
}

func TestToggleHighContrast(t *testing.T) {
	m, store, _ := newTestManager(t, Default, nil)

	_ = m.ToggleHighContrast()
	if v, ok := store.Get(KeyHighContrast); !ok || v != "true" {
		t.Fatalf("flag = %q,%v", v, ok)
	}
	if m.Palette() != highContrast {
		t.Fatal("palette not high contrast")
	}

	_ = m.ToggleHighContrast()
	if _, ok := store.Get(KeyHighContrast); ok {
		t.Fatal("flag not removed")
	}
}

func TestEnvDetector(t *testing.T) {
	tests := []struct {
		scheme, fgbg string
		want         Name
	}{
		{"dark", "", Dark},
		{"light", "15;0", Default},
		{"", "15;0", Dark},
		{"", "0;15", Default},
		{"", "", Default},
	}
	for _, tt := range tests {
		t.Setenv("FX_COLOR_SCHEME", tt.scheme)
		t.Setenv("COLORFGBG", tt.fgbg)
		if got := (EnvDetector{}).SystemPreference(); got != tt.want {
			t.Errorf("scheme=%q fgbg=%q: got %s, want %s", tt.scheme, tt.fgbg, got, tt.want)
		}
	}
}
