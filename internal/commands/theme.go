package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/theme"
)

func init() {
	Register(&ThemeCmd{})
}

// ThemeCmd implements the theme command: the settings page's appearance
// control. The preference is stored locally and survives logout.
type ThemeCmd struct{}

func (c *ThemeCmd) Name() string      { return "theme" }
func (c *ThemeCmd) Aliases() []string { return nil }
func (c *ThemeCmd) Synopsis() string  { return "Show or set the theme" }
func (c *ThemeCmd) Usage() string     { return "taskflow theme [dark|light|auto|toggle]" }
func (c *ThemeCmd) NeedsAuth() bool   { return false }

func (c *ThemeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ThemeCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		mode := app.Theme.Mode()
		resolved := "light"
		if app.Theme.DarkResolved() {
			resolved = "dark"
		}
		if mode == theme.Auto {
			fmt.Fprintf(out, "%s (resolves to %s)\n", mode, resolved)
		} else {
			fmt.Fprintln(out, mode)
		}
		return exitcode.Success
	}

	switch args[0] {
	case "toggle":
		next, err := app.Theme.Toggle()
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		if !cfg.Quiet {
			fmt.Fprintln(out, next)
		}
	case string(theme.Dark), string(theme.Light), string(theme.Auto):
		if err := app.Theme.Set(theme.Mode(args[0])); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		if !cfg.Quiet {
			fmt.Fprintln(out, args[0])
		}
	default:
		fmt.Fprintf(errOut, "error: invalid theme: %s\n", args[0])
		return exitcode.UserError
	}
	return exitcode.Success
}
