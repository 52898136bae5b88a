package commands

import (
	"context"
	"flag"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
	"taskflow/internal/taskctl"
)

func init() {
	Register(&StatusCmd{})
}

// StatusCmd implements the status command: the dashboard summary.
type StatusCmd struct{}

func (c *StatusCmd) Name() string      { return "status" }
func (c *StatusCmd) Aliases() []string { return []string{"dashboard"} }
func (c *StatusCmd) Synopsis() string  { return "Show task counts" }
func (c *StatusCmd) Usage() string     { return "taskflow status" }
func (c *StatusCmd) NeedsAuth() bool   { return true }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatusCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	tasks, err := app.Svc.ListTasks(ctx)
	if err != nil {
		return backendExit(err, errOut)
	}

	total, completed, pending := taskctl.Counts(tasks)
	output.FormatCounts(out, total, completed, pending, app.Palette(out))
	return exitcode.Success
}
