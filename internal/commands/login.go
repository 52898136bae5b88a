package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command: the login page.
// The password is read from stdin so it never appears in shell history.
type LoginCmd struct {
	stdin io.Reader
}

// SetStdin overrides the password input source (for testing).
func (c *LoginCmd) SetStdin(r io.Reader) {
	c.stdin = r
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Sign in with email and password" }
func (c *LoginCmd) Usage() string     { return "taskflow login <email>" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}
	email := strings.TrimSpace(args[0])
	if email == "" {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}

	if app.Auth.CurrentUserID() != "" {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in (run: taskflow logout)")
		}
		return exitcode.Success
	}

	password, ok := readLine(promptReader(c.stdin), "password: ", errOut)
	if !ok {
		fmt.Fprintln(errOut, "error: password required")
		return exitcode.UserError
	}

	user, err := app.Auth.SignIn(ctx, email, password)
	if err != nil {
		if strings.Contains(err.Error(), "invalid credentials") {
			fmt.Fprintln(errOut, "error: invalid credentials")
			return exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "logged in as %s\n", user.Email)
	}
	return exitcode.Success
}

// promptReader wraps the input source (os.Stdin when nil) in one buffered
// reader. Commands that prompt more than once must reuse the same reader, or
// the first prompt's buffer fill swallows the later lines.
func promptReader(r io.Reader) *bufio.Reader {
	if r == nil {
		r = os.Stdin
	}
	return bufio.NewReader(r)
}

// readLine prompts on errOut and reads one line from r.
func readLine(r *bufio.Reader, prompt string, errOut io.Writer) (string, bool) {
	fmt.Fprint(errOut, prompt)
	line, err := r.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" && err != nil {
		return "", false
	}
	return line, line != ""
}
