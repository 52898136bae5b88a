// Package theme holds the process-wide visual preference: dark, light, or
// auto. The preference is persisted in the prefs bucket and survives
// sign-out.
package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"taskflow/internal/session"
)

// Mode is a theme preference value.
type Mode string

// Theme modes.
const (
	Dark  Mode = "dark"
	Light Mode = "light"
	Auto  Mode = "auto"
)

// Valid reports whether s is a recognized mode.
func Valid(s string) bool {
	switch Mode(s) {
	case Dark, Light, Auto:
		return true
	}
	return false
}

// Manager reads and writes the theme preference.
type Manager struct {
	store *session.Store
}

// NewManager creates a manager over the preference store. When no
// preference has been persisted yet, the first Set seeds it; reads fall
// back to the terminal background.
func NewManager(store *session.Store) *Manager {
	return &Manager{store: store}
}

// Mode returns the persisted preference. When unset, it is seeded from the
// terminal background (the platform preference).
func (m *Manager) Mode() Mode {
	if v := m.store.Theme(); Valid(v) {
		return Mode(v)
	}
	if terminalDark() {
		return Dark
	}
	return Light
}

// Set persists the preference.
func (m *Manager) Set(mode Mode) error {
	if !Valid(string(mode)) {
		return fmt.Errorf("invalid theme: %s", mode)
	}
	return m.store.SetTheme(string(mode))
}

// Toggle flips between dark and light only; auto toggles to dark, the same
// binary flip the settings page performs. Returns the new mode.
func (m *Manager) Toggle() (Mode, error) {
	next := Dark
	if m.Mode() == Dark {
		next = Light
	}
	return next, m.Set(next)
}

// DarkResolved resolves the effective mode to a dark/light boolean. Auto is
// resolved against the terminal's current background at call time; later
// terminal changes are not observed.
func (m *Manager) DarkResolved() bool {
	switch m.Mode() {
	case Dark:
		return true
	case Light:
		return false
	default:
		return terminalDark()
	}
}

func terminalDark() bool {
	return lipgloss.HasDarkBackground()
}
