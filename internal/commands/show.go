package commands

import (
	"context"
	"flag"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command: the task detail page.
type ShowCmd struct{}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return nil }
func (c *ShowCmd) Synopsis() string  { return "Show one task in full" }
func (c *ShowCmd) Usage() string     { return "taskflow show <task-id>" }
func (c *ShowCmd) NeedsAuth() bool   { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	taskID, ok := parseID(args, "task", errOut)
	if !ok {
		return exitcode.UserError
	}

	task, err := app.Svc.GetTask(ctx, taskID)
	if err != nil {
		return backendExit(err, errOut)
	}

	output.FormatTaskDetail(out, task, app.Palette(out))
	return exitcode.Success
}
