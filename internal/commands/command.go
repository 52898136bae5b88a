// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"taskflow/internal/api"
	"taskflow/internal/config"
	"taskflow/internal/events"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
	"taskflow/internal/service"
	"taskflow/internal/session"
	"taskflow/internal/theme"
)

// Authenticator is the slice of the auth accessor commands depend on.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (service.User, error)
	SignUp(ctx context.Context, email, password, name string) (service.User, error)
	SignOut() error
	CurrentUserID() string
}

// App bundles the shared dependencies handed to every command.
type App struct {
	Store  *session.Store
	Svc    service.Service
	Auth   Authenticator
	Theme  *theme.Manager
	Events *events.Registry
	Log    *zap.Logger
}

// Palette resolves the theme and returns styles bound to w, so output
// degrades to plain text when w is not a terminal.
func (a *App) Palette(w io.Writer) output.Palette {
	return output.PaletteFor(w, a.Theme.DarkResolved())
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a signed-in session.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command and returns the exit code.
	Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int
}

// backendExit maps a backend error to stderr output and an exit code.
func backendExit(err error, errOut io.Writer) int {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	case errors.Is(err, api.ErrNotFound):
		fmt.Fprintln(errOut, "error: not found")
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}

// parseID parses a positional numeric id argument.
func parseID(args []string, what string, errOut io.Writer) (int64, bool) {
	if len(args) == 0 {
		fmt.Fprintf(errOut, "error: %s id required\n", what)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		fmt.Fprintf(errOut, "error: invalid %s id: %s\n", what, args[0])
		return 0, false
	}
	return id, true
}
