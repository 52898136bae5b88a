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
	Register(&EditCmd{})
}

// EditCmd implements the edit command: the task detail page's edit form.
type EditCmd struct {
	title       string
	description string
	titleSet    bool
	descSet     bool
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task's title or description" }
func (c *EditCmd) Usage() string {
	return "taskflow edit [--title <text>] [--desc <text>] <task-id>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Func("title", "", func(v string) error {
		c.title = v
		c.titleSet = true
		return nil
	})
	fs.Func("desc", "", func(v string) error {
		c.description = v
		c.descSet = true
		return nil
	})
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	taskID, ok := parseID(args, "task", errOut)
	if !ok {
		return exitcode.UserError
	}
	if !c.titleSet && !c.descSet {
		fmt.Fprintln(errOut, "error: nothing to change (use --title or --desc)")
		return exitcode.UserError
	}
	if c.titleSet && strings.TrimSpace(c.title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	var title, desc *string
	if c.titleSet {
		title = &c.title
	}
	if c.descSet {
		desc = &c.description
	}

	ctl := taskctl.New(app.Svc, app.Auth.CurrentUserID())
	if err := ctl.Load(ctx); err != nil {
		return backendExit(err, errOut)
	}

	if err := ctl.Update(ctx, taskID, title, desc); err != nil {
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
