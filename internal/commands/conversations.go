package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"taskflow/internal/chatctl"
	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
)

func init() {
	Register(&ConversationsCmd{})
	Register(&RmConvCmd{})
}

// ConversationsCmd lists the user's conversations.
type ConversationsCmd struct {
	transcript int64
}

func (c *ConversationsCmd) Name() string      { return "conversations" }
func (c *ConversationsCmd) Aliases() []string { return []string{"convs"} }
func (c *ConversationsCmd) Synopsis() string  { return "List conversations" }
func (c *ConversationsCmd) Usage() string {
	return "taskflow conversations [--show <id>]"
}
func (c *ConversationsCmd) NeedsAuth() bool { return true }

func (c *ConversationsCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Int64Var(&c.transcript, "show", 0, "")
}

func (c *ConversationsCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	ctl := chatctl.New(app.Svc, app.Events, app.Auth.CurrentUserID())
	p := app.Palette(out)

	// --show prints one transcript instead of the list.
	if c.transcript != 0 {
		if err := ctl.LoadConversation(ctx, c.transcript); err != nil {
			return backendExit(err, errOut)
		}
		for _, msg := range ctl.Messages() {
			output.FormatMessage(out, msg, p)
		}
		return exitcode.Success
	}

	if err := ctl.LoadConversations(ctx); err != nil {
		return backendExit(err, errOut)
	}
	convs := ctl.Conversations()
	if len(convs) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no conversations found")
		}
		return exitcode.Success
	}
	for _, conv := range convs {
		output.FormatConversation(out, conv, p)
	}
	return exitcode.Success
}

// RmConvCmd deletes a conversation, asking for confirmation unless --force.
type RmConvCmd struct {
	force bool
	stdin io.Reader
}

// SetStdin overrides the confirmation input source (for testing).
func (c *RmConvCmd) SetStdin(r io.Reader) {
	c.stdin = r
}

// SetForce skips confirmation (for testing).
func (c *RmConvCmd) SetForce(force bool) {
	c.force = force
}

func (c *RmConvCmd) Name() string      { return "rmconv" }
func (c *RmConvCmd) Aliases() []string { return nil }
func (c *RmConvCmd) Synopsis() string  { return "Delete a conversation" }
func (c *RmConvCmd) Usage() string     { return "taskflow rmconv [--force] <conversation-id>" }
func (c *RmConvCmd) NeedsAuth() bool   { return true }

func (c *RmConvCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
	fs.BoolVar(&c.force, "f", false, "")
}

func (c *RmConvCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	convID, ok := parseID(args, "conversation", errOut)
	if !ok {
		return exitcode.UserError
	}

	if !c.force {
		in := c.stdin
		if in == nil {
			in = os.Stdin
		}
		fmt.Fprintf(errOut, "delete conversation %d? [y/N] ", convID)
		line, _ := bufio.NewReader(in).ReadString('\n')
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			if !cfg.Quiet {
				fmt.Fprintln(out, "aborted")
			}
			return exitcode.Success
		}
	}

	ctl := chatctl.New(app.Svc, app.Events, app.Auth.CurrentUserID())
	if err := ctl.DeleteConversation(ctx, convID); err != nil {
		return backendExit(err, errOut)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
