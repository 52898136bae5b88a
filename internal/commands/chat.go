package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskflow/internal/chatctl"
	"taskflow/internal/config"
	"taskflow/internal/events"
	"taskflow/internal/exitcode"
)

func init() {
	Register(&ChatCmd{})
}

// ChatCmd implements the chat command: a one-shot message to the assistant.
// Use `taskflow tui` for the interactive chat page.
type ChatCmd struct {
	conversationID int64
}

// SetConversationID sets the conversation to continue (for testing).
func (c *ChatCmd) SetConversationID(id int64) {
	c.conversationID = id
}

func (c *ChatCmd) Name() string      { return "chat" }
func (c *ChatCmd) Aliases() []string { return []string{"ask"} }
func (c *ChatCmd) Synopsis() string  { return "Send a message to the assistant" }
func (c *ChatCmd) Usage() string {
	return "taskflow chat [--conversation <id>] <message...>"
}
func (c *ChatCmd) NeedsAuth() bool { return true }

func (c *ChatCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Int64Var(&c.conversationID, "conversation", 0, "")
	fs.Int64Var(&c.conversationID, "c", 0, "")
}

func (c *ChatCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(errOut, "error: message required")
		return exitcode.UserError
	}

	// Observe the task-change signal the controller publishes so the
	// one-shot invocation can report assistant-driven mutations.
	tasksChanged := false
	unsubscribe := app.Events.Subscribe(events.TasksChanged, func() {
		tasksChanged = true
	})
	defer unsubscribe()

	ctl := chatctl.New(app.Svc, app.Events, app.Auth.CurrentUserID())
	if c.conversationID != 0 {
		// Seat the id only; a one-shot send never displays the transcript.
		ctl.SetConversation(c.conversationID)
	}

	reply, err := ctl.Send(ctx, text)
	if err != nil {
		return backendExit(err, errOut)
	}

	p := app.Palette(out)
	fmt.Fprintln(out, p.Assistant.Render(reply.Response))
	if !cfg.Quiet {
		fmt.Fprintln(out, p.Meta.Render(fmt.Sprintf("conversation %d", reply.ConversationID)))
		if tasksChanged {
			fmt.Fprintln(out, p.Meta.Render("(tasks updated)"))
		}
	}
	return exitcode.Success
}
