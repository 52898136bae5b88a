package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/taskctl"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command: flips a task's completion state.
// The backend toggle endpoint flips in both directions, so running done on
// a completed task reopens it.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string     { return "taskflow done <task-id>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	taskID, ok := parseID(args, "task", errOut)
	if !ok {
		return exitcode.UserError
	}

	ctl := taskctl.New(app.Svc, app.Auth.CurrentUserID())
	if err := ctl.Load(ctx); err != nil {
		return backendExit(err, errOut)
	}

	if err := ctl.Toggle(ctx, taskID); err != nil {
		if strings.Contains(err.Error(), "task not found") {
			fmt.Fprintf(errOut, "error: task not found: %d\n", taskID)
			return exitcode.UserError
		}
		return backendExit(err, errOut)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
