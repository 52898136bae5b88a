package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
	"taskflow/internal/taskctl"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command: the tasks page.
// Runs as the default when taskflow is invoked with no arguments.
type ListCmd struct {
	search string
	status string
}

// SetFilter sets the search term and status filter (for testing).
func (c *ListCmd) SetFilter(search, status string) {
	c.search = search
	c.status = status
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskflow list [--search <term>] [--status all|completed|pending]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "s", "", "")
	fs.StringVar(&c.status, "status", taskctl.StatusAll, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	status := c.status
	if status == "" {
		status = taskctl.StatusAll
	}
	if !taskctl.ValidStatus(status) {
		fmt.Fprintf(errOut, "error: invalid status: %s\n", status)
		return exitcode.UserError
	}

	ctl := taskctl.New(app.Svc, app.Auth.CurrentUserID())
	if err := ctl.Load(ctx); err != nil {
		return backendExit(err, errOut)
	}

	// Derived view, recomputed from the full collection on every run.
	tasks := taskctl.Filter(ctl.Tasks(), c.search, status)
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	p := app.Palette(out)
	for _, t := range tasks {
		output.FormatTask(out, t, p)
	}
	return exitcode.Success
}
