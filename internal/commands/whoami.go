package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd prints the signed-in user's profile. When the backend is
// unreachable it falls back to the name/email cached at login.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Show the signed-in user" }
func (c *WhoamiCmd) Usage() string     { return "taskflow whoami" }
func (c *WhoamiCmd) NeedsAuth() bool   { return true }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	p := app.Palette(out)

	user, err := app.Svc.Profile(ctx)
	if err == nil {
		output.FormatProfile(out, user, p)
		return exitcode.Success
	}

	// Cached fallback: display-only values stored at login.
	if name := app.Store.CachedName(); name != "" {
		fmt.Fprintf(out, "%s %s (cached)\n", p.Header.Render("name:"), name)
		fmt.Fprintf(out, "%s %s (cached)\n", p.Header.Render("email:"), app.Store.CachedEmail())
		return exitcode.Success
	}
	return backendExit(err, errOut)
}
