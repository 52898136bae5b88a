package session_test

import (
	"path/filepath"
	"testing"

	"golang.org/x/oauth2"

	"taskflow/internal/session"
)

func openStore(t *testing.T) (*session.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := session.Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestSaveAndReadSession(t *testing.T) {
	store, _ := openStore(t)

	token := &oauth2.Token{AccessToken: "opaque-credential", TokenType: "Bearer"}
	if err := store.SaveSession(token, "user-1", "Test User", "user@example.com"); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	if got := store.UserID(); got != "user-1" {
		t.Errorf("UserID = %q, want user-1", got)
	}
	if got := store.CachedName(); got != "Test User" {
		t.Errorf("CachedName = %q", got)
	}
	if got := store.CachedEmail(); got != "user@example.com" {
		t.Errorf("CachedEmail = %q", got)
	}
	readToken := store.Token()
	if readToken == nil || readToken.AccessToken != "opaque-credential" {
		t.Errorf("Token = %+v, want stored credential", readToken)
	}
	if readToken.Type() != "Bearer" {
		t.Errorf("token type = %q, want Bearer", readToken.Type())
	}
}

func TestEmptyStore(t *testing.T) {
	store, _ := openStore(t)

	if store.UserID() != "" {
		t.Error("empty store must report no user")
	}
	if store.Token() != nil {
		t.Error("empty store must report no token")
	}
	if store.Theme() != "" {
		t.Error("empty store must report no theme")
	}
}

func TestClearSessionKeepsPreferences(t *testing.T) {
	store, _ := openStore(t)

	token := &oauth2.Token{AccessToken: "opaque-credential", TokenType: "Bearer"}
	if err := store.SaveSession(token, "user-1", "Test User", "user@example.com"); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if err := store.SetTheme("dark"); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}

	if err := store.ClearSession(); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}

	if store.UserID() != "" || store.Token() != nil || store.CachedName() != "" {
		t.Error("ClearSession must remove all session keys")
	}
	if store.Theme() != "dark" {
		t.Errorf("theme must survive sign-out, got %q", store.Theme())
	}
}

func TestSessionSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := session.Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	token := &oauth2.Token{AccessToken: "opaque-credential", TokenType: "Bearer"}
	if err := store.SaveSession(token, "user-1", "Test User", "user@example.com"); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := session.Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	if reopened.UserID() != "user-1" {
		t.Errorf("expected persisted session, got user %q", reopened.UserID())
	}
}
