package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskflow help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskflow login [common flags] <email>                Sign in
  taskflow signup [common flags] [--name <name>] <email>
  taskflow logout [common flags]
  taskflow whoami [common flags]
  taskflow list [common flags] [--search <text>] [--status all|completed|pending]
  taskflow add [common flags] [--desc <text>] <title...>
  taskflow done [common flags] <task-id>               Toggle completion
  taskflow rm [common flags] <task-id>
  taskflow edit [common flags] [--title <text>] [--desc <text>] <task-id>
  taskflow show [common flags] <task-id>
  taskflow status [common flags]                       Dashboard counts
  taskflow chat [common flags] [--conversation <id>] <message...>
  taskflow conversations [common flags] [--show <id>]
  taskflow rmconv [common flags] [--force] <conversation-id>
  taskflow profile [common flags] [--name <n>] [--email <e>] [--bio <b>]
  taskflow theme [dark|light|auto|toggle]
  taskflow tui [common flags]                          Interactive interface
  taskflow help
  taskflow version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
