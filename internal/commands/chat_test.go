package commands_test

import (
	"fmt"
	"strings"
	"testing"

	"taskflow/internal/commands"
	"taskflow/internal/exitcode"
	"taskflow/internal/service"
	"taskflow/internal/testutil"
)

// Tests for chat command
func TestChatCommand_KeywordTriggersTaskNote(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ChatResponse = "Deleted it."
	app := newTestApp(t, svc, testutil.NewFakeAuth())

	cmd := &commands.ChatCmd{}
	stdout, stderr, code := runCommand(t, cmd, app, []string{"please", "delete", "task", "3"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Deleted it.\n") {
		t.Errorf("expected assistant reply, got %q", stdout)
	}
	if !strings.Contains(stdout, "(tasks updated)") {
		t.Errorf("expected tasks updated note, got %q", stdout)
	}
}

func TestChatCommand_NoKeywordNoNote(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ChatResponse = "It is sunny."
	app := newTestApp(t, svc, testutil.NewFakeAuth())

	cmd := &commands.ChatCmd{}
	stdout, _, code := runCommand(t, cmd, app, []string{"what's", "the", "weather"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if strings.Contains(stdout, "(tasks updated)") {
		t.Errorf("unexpected tasks updated note: %q", stdout)
	}
}

func TestChatCommand_EmptyToolCallsSuppressesNote(t *testing.T) {
	svc := testutil.NewFakeService()
	// The backend reported no tool activity; the keyword heuristic must not
	// override a structured answer.
	svc.ChatToolCalls = []service.ToolCall{}
	app := newTestApp(t, svc, testutil.NewFakeAuth())

	cmd := &commands.ChatCmd{}
	stdout, _, code := runCommand(t, cmd, app, []string{"delete", "everything"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if strings.Contains(stdout, "(tasks updated)") {
		t.Errorf("tool_calls=[] must suppress the note, got %q", stdout)
	}
}

func TestChatCommand_ToolCallsTriggerNote(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ChatToolCalls = []service.ToolCall{{Name: "create_task"}}
	app := newTestApp(t, svc, testutil.NewFakeAuth())

	cmd := &commands.ChatCmd{}
	stdout, _, code := runCommand(t, cmd, app, []string{"what's", "next"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stdout, "(tasks updated)") {
		t.Errorf("expected tasks updated note from tool calls, got %q", stdout)
	}
}

func TestChatCommand_NoMessage(t *testing.T) {
	app := newTestApp(t, testutil.NewFakeService(), testutil.NewFakeAuth())

	cmd := &commands.ChatCmd{}
	_, stderr, code := runCommand(t, cmd, app, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: message required\n" {
		t.Errorf("expected message required error, got %q", stderr)
	}
}

func TestChatCommand_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SendChatErr = testutil.ErrBackend
	app := newTestApp(t, svc, testutil.NewFakeAuth())

	cmd := &commands.ChatCmd{}
	_, stderr, code := runCommand(t, cmd, app, []string{"hello"}, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: backend unavailable\n" {
		t.Errorf("expected backend error, got %q", stderr)
	}
}

func TestChatCommand_ConversationFlagSkipsTranscriptFetch(t *testing.T) {
	svc := testutil.NewFakeService()
	conv := svc.AddConversation()
	svc.MessagesErr = testutil.ErrBackend // the one-shot send must never fetch the transcript
	app := newTestApp(t, svc, testutil.NewFakeAuth())

	cmd := &commands.ChatCmd{}
	cmd.SetConversationID(conv.ID)
	stdout, stderr, code := runCommand(t, cmd, app, []string{"still", "there?"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if !strings.Contains(stdout, fmt.Sprintf("conversation %d", conv.ID)) {
		t.Errorf("expected reply in conversation %d, got %q", conv.ID, stdout)
	}
}

// Tests for conversations command
func TestConversationsCommand_List(t *testing.T) {
	svc := testutil.NewFakeService()
	a := svc.AddConversation()
	b := svc.AddConversation()
	app := newTestApp(t, svc, testutil.NewFakeAuth())

	cmd := &commands.ConversationsCmd{}
	stdout, _, code := runCommand(t, cmd, app, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := fmt.Sprintf("%6d  %s\n%6d  %s\n", a.ID, a.UpdatedAt, b.ID, b.UpdatedAt)
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestConversationsCommand_Empty(t *testing.T) {
	app := newTestApp(t, testutil.NewFakeService(), testutil.NewFakeAuth())

	cmd := &commands.ConversationsCmd{}
	stdout, _, code := runCommand(t, cmd, app, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no conversations found\n" {
		t.Errorf("expected empty notice, got %q", stdout)
	}
}

// Tests for rmconv command
func TestRmConvCommand_Force(t *testing.T) {
	svc := testutil.NewFakeService()
	conv := svc.AddConversation()
	app := newTestApp(t, svc, testutil.NewFakeAuth())

	cmd := &commands.RmConvCmd{}
	cmd.SetForce(true)
	stdout, stderr, code := runCommand(t, cmd, app, []string{fmt.Sprint(conv.ID)}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
}

func TestRmConvCommand_ConfirmYes(t *testing.T) {
	svc := testutil.NewFakeService()
	conv := svc.AddConversation()
	app := newTestApp(t, svc, testutil.NewFakeAuth())

	cmd := &commands.RmConvCmd{}
	cmd.SetStdin(strings.NewReader("y\n"))
	stdout, stderr, code := runCommand(t, cmd, app, []string{fmt.Sprint(conv.ID)}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expectedPrompt := fmt.Sprintf("delete conversation %d? [y/N] ", conv.ID)
	if stderr != expectedPrompt {
		t.Errorf("expected prompt %q, got %q", expectedPrompt, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
}

func TestRmConvCommand_ConfirmAbort(t *testing.T) {
	svc := testutil.NewFakeService()
	conv := svc.AddConversation()
	app := newTestApp(t, svc, testutil.NewFakeAuth())

	cmd := &commands.RmConvCmd{}
	cmd.SetStdin(strings.NewReader("n\n"))
	stdout, _, code := runCommand(t, cmd, app, []string{fmt.Sprint(conv.ID)}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "aborted\n" {
		t.Errorf("expected 'aborted\\n', got %q", stdout)
	}

	convs, _ := svc.Conversations(t.Context())
	if len(convs) != 1 {
		t.Errorf("aborted delete must keep the conversation, got %d", len(convs))
	}
}

func TestRmConvCommand_NoID(t *testing.T) {
	app := newTestApp(t, testutil.NewFakeService(), testutil.NewFakeAuth())

	cmd := &commands.RmConvCmd{}
	_, stderr, code := runCommand(t, cmd, app, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: conversation id required\n" {
		t.Errorf("expected conversation id required error, got %q", stderr)
	}
}
