package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/tui"
)

func init() {
	Register(&TuiCmd{})
}

// TuiCmd launches the interactive interface.
type TuiCmd struct{}

func (c *TuiCmd) Name() string      { return "tui" }
func (c *TuiCmd) Aliases() []string { return []string{"ui"} }
func (c *TuiCmd) Synopsis() string  { return "Open the interactive interface" }
func (c *TuiCmd) Usage() string     { return "taskflow tui" }
func (c *TuiCmd) NeedsAuth() bool   { return true }

func (c *TuiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TuiCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	err := tui.Run(ctx, app.Svc, app.Events, app.Auth.CurrentUserID(), app.Theme.DarkResolved())
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
