package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
	"taskflow/internal/service"
)

func init() {
	Register(&ProfileCmd{})
}

// ProfileCmd implements the profile command: shows the profile page, or
// updates it when any of --name/--email/--bio are given.
type ProfileCmd struct {
	name     string
	email    string
	bio      string
	nameSet  bool
	emailSet bool
	bioSet   bool
}

func (c *ProfileCmd) Name() string      { return "profile" }
func (c *ProfileCmd) Aliases() []string { return nil }
func (c *ProfileCmd) Synopsis() string  { return "Show or update the user profile" }
func (c *ProfileCmd) Usage() string {
	return "taskflow profile [--name <name>] [--email <email>] [--bio <text>]"
}
func (c *ProfileCmd) NeedsAuth() bool { return true }

func (c *ProfileCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Func("name", "", func(v string) error {
		c.name = v
		c.nameSet = true
		return nil
	})
	fs.Func("email", "", func(v string) error {
		c.email = v
		c.emailSet = true
		return nil
	})
	fs.Func("bio", "", func(v string) error {
		c.bio = v
		c.bioSet = true
		return nil
	})
}

func (c *ProfileCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	p := app.Palette(out)

	if !c.nameSet && !c.emailSet && !c.bioSet {
		user, err := app.Svc.Profile(ctx)
		if err != nil {
			return backendExit(err, errOut)
		}
		output.FormatProfile(out, user, p)
		return exitcode.Success
	}

	if c.nameSet && strings.TrimSpace(c.name) == "" {
		fmt.Fprintln(errOut, "error: name cannot be empty")
		return exitcode.UserError
	}
	if c.emailSet && strings.TrimSpace(c.email) == "" {
		fmt.Fprintln(errOut, "error: email cannot be empty")
		return exitcode.UserError
	}

	var update service.ProfileUpdate
	if c.nameSet {
		update.Name = &c.name
	}
	if c.emailSet {
		update.Email = &c.email
	}
	if c.bioSet {
		update.Bio = &c.bio
	}

	user, err := app.Svc.UpdateProfile(ctx, update)
	if err != nil {
		return backendExit(err, errOut)
	}
	output.FormatProfile(out, user, p)
	return exitcode.Success
}
