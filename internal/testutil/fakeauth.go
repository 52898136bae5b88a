package testutil

import (
	"context"

	"taskflow/internal/service"
)

// FakeAuth is an in-memory authenticator for command tests.
// A zero UserID means signed out.
type FakeAuth struct {
	UserID     string
	User       service.User
	SignInErr  error
	SignUpErr  error
	SignOutErr error
	SignedOut  bool
}

// NewFakeAuth returns a fake signed in as the default user.
func NewFakeAuth() *FakeAuth {
	return &FakeAuth{
		UserID: DefaultUserID,
		User: service.User{
			ID:    DefaultUserID,
			Email: "user@example.com",
			Name:  "Test User",
		},
	}
}

func (f *FakeAuth) SignIn(ctx context.Context, email, password string) (service.User, error) {
	if f.SignInErr != nil {
		return service.User{}, f.SignInErr
	}
	f.UserID = f.User.ID
	return f.User, nil
}

func (f *FakeAuth) SignUp(ctx context.Context, email, password, name string) (service.User, error) {
	if f.SignUpErr != nil {
		return service.User{}, f.SignUpErr
	}
	u := service.User{ID: DefaultUserID, Email: email, Name: name}
	f.User = u
	f.UserID = u.ID
	return u, nil
}

func (f *FakeAuth) SignOut() error {
	if f.SignOutErr != nil {
		return f.SignOutErr
	}
	f.UserID = ""
	f.SignedOut = true
	return nil
}

func (f *FakeAuth) CurrentUserID() string {
	return f.UserID
}
