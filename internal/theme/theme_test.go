package theme_test

import (
	"path/filepath"
	"testing"

	"taskflow/internal/session"
	"taskflow/internal/theme"
)

func newManager(t *testing.T) *theme.Manager {
	t.Helper()
	store, err := session.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return theme.NewManager(store)
}

func TestValid(t *testing.T) {
	for _, s := range []string{"dark", "light", "auto"} {
		if !theme.Valid(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "sepia", "DARK"} {
		if theme.Valid(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestSetAndMode(t *testing.T) {
	m := newManager(t)

	if err := m.Set(theme.Light); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if m.Mode() != theme.Light {
		t.Errorf("Mode = %q, want light", m.Mode())
	}
	if m.DarkResolved() {
		t.Error("light must resolve to not-dark")
	}

	if err := m.Set(theme.Dark); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !m.DarkResolved() {
		t.Error("dark must resolve to dark")
	}
}

func TestSetInvalid(t *testing.T) {
	m := newManager(t)
	if err := m.Set(theme.Mode("sepia")); err == nil {
		t.Fatal("expected error for invalid mode")
	}
}

func TestToggleIsBinary(t *testing.T) {
	m := newManager(t)

	if err := m.Set(theme.Light); err != nil {
		t.Fatalf("Set: %v", err)
	}
	next, err := m.Toggle()
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if next != theme.Dark {
		t.Errorf("light toggles to %q, want dark", next)
	}

	next, err = m.Toggle()
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if next != theme.Light {
		t.Errorf("dark toggles to %q, want light", next)
	}
}

func TestToggleFromAutoGoesDark(t *testing.T) {
	m := newManager(t)
	if err := m.Set(theme.Auto); err != nil {
		t.Fatalf("Set: %v", err)
	}
	next, err := m.Toggle()
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if next != theme.Dark {
		t.Errorf("auto toggles to %q, want dark", next)
	}
}
