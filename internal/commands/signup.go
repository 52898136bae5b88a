package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskflow/internal/auth"
	"taskflow/internal/config"
	"taskflow/internal/exitcode"
)

func init() {
	Register(&SignupCmd{})
}

// SignupCmd implements the signup command: the registration page.
// Password and confirmation are read from stdin; mismatch and length are
// rejected before any network call.
type SignupCmd struct {
	name  string
	stdin io.Reader
}

// SetStdin overrides the password input source (for testing).
func (c *SignupCmd) SetStdin(r io.Reader) {
	c.stdin = r
}

func (c *SignupCmd) Name() string      { return "signup" }
func (c *SignupCmd) Aliases() []string { return []string{"register"} }
func (c *SignupCmd) Synopsis() string  { return "Create an account" }
func (c *SignupCmd) Usage() string     { return "taskflow signup --name <name> <email>" }
func (c *SignupCmd) NeedsAuth() bool   { return false }

func (c *SignupCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.name, "name", "", "")
	fs.StringVar(&c.name, "n", "", "")
}

func (c *SignupCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}
	if strings.TrimSpace(c.name) == "" {
		fmt.Fprintln(errOut, "error: name required (use --name)")
		return exitcode.UserError
	}
	email := strings.TrimSpace(args[0])

	in := promptReader(c.stdin)
	password, ok := readLine(in, "password: ", errOut)
	if !ok {
		fmt.Fprintln(errOut, "error: password required")
		return exitcode.UserError
	}
	if len(password) < auth.MinPasswordLength {
		fmt.Fprintf(errOut, "error: password must be at least %d characters\n", auth.MinPasswordLength)
		return exitcode.UserError
	}
	confirm, _ := readLine(in, "confirm password: ", errOut)
	if confirm != password {
		fmt.Fprintln(errOut, "error: passwords do not match")
		return exitcode.UserError
	}

	user, err := app.Auth.SignUp(ctx, email, password, c.name)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "account created for %s\n", user.Email)
	}
	return exitcode.Success
}
