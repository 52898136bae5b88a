// Package auth wraps sign-in, sign-up, and sign-out against the backend's
// auth endpoints and owns the stored session.
package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"

	"taskflow/internal/api"
	"taskflow/internal/service"
	"taskflow/internal/session"
)

// MinPasswordLength is enforced before any network call.
const MinPasswordLength = 8

// Accessor performs authentication and session storage.
type Accessor struct {
	api   *api.Client
	store *session.Store
}

// New creates an accessor over the API client and session store.
func New(client *api.Client, store *session.Store) *Accessor {
	return &Accessor{api: client, store: store}
}

// SignIn authenticates with email/password and stores the session.
// It returns a structured error; it never panics.
func (a *Accessor) SignIn(ctx context.Context, email, password string) (service.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return service.User{}, fmt.Errorf("email and password required")
	}

	resp, err := a.api.Login(ctx, email, password)
	if err != nil {
		return service.User{}, loginError(err)
	}
	if err := a.saveSession(resp); err != nil {
		return service.User{}, fmt.Errorf("failed to store session: %w", err)
	}
	return resp.User, nil
}

// SignUp registers an account and stores the session, identical storage
// contract to SignIn. Password length is validated locally first.
func (a *Accessor) SignUp(ctx context.Context, email, password, name string) (service.User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || name == "" {
		return service.User{}, fmt.Errorf("email and name required")
	}
	if len(password) < MinPasswordLength {
		return service.User{}, fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}

	resp, err := a.api.Signup(ctx, email, password, name)
	if err != nil {
		return service.User{}, fmt.Errorf("registration failed: %w", err)
	}
	if err := a.saveSession(resp); err != nil {
		return service.User{}, fmt.Errorf("failed to store session: %w", err)
	}
	return resp.User, nil
}

// SignOut clears the local session unconditionally. The backend has no
// logout endpoint, so there is nothing to notify.
func (a *Accessor) SignOut() error {
	return a.store.ClearSession()
}

// CurrentUserID returns the stored user id, or "" when signed out.
func (a *Accessor) CurrentUserID() string {
	return a.store.UserID()
}

func (a *Accessor) saveSession(resp api.AuthResponse) error {
	tokenType := resp.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	token := &oauth2.Token{
		AccessToken: resp.AccessToken,
		TokenType:   tokenType,
	}
	return a.store.SaveSession(token, resp.User.ID, resp.User.Name, resp.User.Email)
}

// loginError distinguishes bad credentials from transport failures.
func loginError(err error) error {
	if strings.Contains(err.Error(), "401") || strings.Contains(err.Error(), "Incorrect") {
		return fmt.Errorf("invalid credentials")
	}
	return fmt.Errorf("login failed: %w", err)
}
