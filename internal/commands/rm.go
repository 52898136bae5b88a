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
	Register(&RmCmd{})
}

// RmCmd implements the rm command: deletes a task.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "taskflow rm <task-id>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	taskID, ok := parseID(args, "task", errOut)
	if !ok {
		return exitcode.UserError
	}

	ctl := taskctl.New(app.Svc, app.Auth.CurrentUserID())
	if err := ctl.Load(ctx); err != nil {
		return backendExit(err, errOut)
	}

	if err := ctl.Delete(ctx, taskID); err != nil {
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
