// Package chatctl manages the assistant conversation transcript and relays
// task-mutation signals to the rest of the application.
package chatctl

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"taskflow/internal/events"
	"taskflow/internal/service"
)

// taskKeywords is the fallback heuristic for detecting task-mutating
// messages when the backend omits structured tool calls. Matching is
// lowercase substring containment, false positives included.
var taskKeywords = []string{"delete", "remove", "complete", "finish", "done", "add", "create"}

// KeywordTriggered reports whether text contains any task-mutation keyword.
func KeywordTriggered(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range taskKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// MutatesTasks decides whether a completed send should broadcast a task
// refresh. The structured tool_calls field is authoritative when the
// backend sent it; the keyword heuristic applies only when it was omitted.
func MutatesTasks(reply service.ChatReply, sentText string) bool {
	if reply.ToolCalls != nil {
		return len(reply.ToolCalls) > 0
	}
	return KeywordTriggered(sentText)
}

// Controller owns one conversation transcript and the conversation list.
type Controller struct {
	mu            sync.Mutex
	svc           service.Service
	reg           *events.Registry
	userID        string
	convID        int64
	messages      []service.Message
	conversations []service.Conversation
	sending       bool
	lastErr       string
	onChange      func()
}

// New creates a controller publishing task-change signals to reg.
func New(svc service.Service, reg *events.Registry, userID string) *Controller {
	return &Controller{svc: svc, reg: reg, userID: userID}
}

// SetOnChange registers a repaint callback, invoked without the lock held.
func (c *Controller) SetOnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Messages returns a snapshot of the active transcript.
func (c *Controller) Messages() []service.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]service.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Conversations returns a snapshot of the conversation list.
func (c *Controller) Conversations() []service.Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]service.Conversation, len(c.conversations))
	copy(out, c.conversations)
	return out
}

// ConversationID returns the active conversation id, zero when none.
func (c *Controller) ConversationID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.convID
}

// Sending reports whether a send is in flight.
func (c *Controller) Sending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sending
}

// Err returns the last surfaced error message, or "".
func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// StartNew clears the transcript and active conversation. No network call.
func (c *Controller) StartNew() {
	c.mu.Lock()
	c.messages = nil
	c.convID = 0
	c.lastErr = ""
	c.mu.Unlock()
	c.notify()
}

// SetConversation makes an existing conversation active without fetching
// its transcript; the next Send continues it. Use LoadConversation when the
// transcript itself is needed.
func (c *Controller) SetConversation(conversationID int64) {
	c.mu.Lock()
	c.convID = conversationID
	c.messages = nil
	c.lastErr = ""
	c.mu.Unlock()
	c.notify()
}

// LoadConversations refreshes the conversation list.
func (c *Controller) LoadConversations(ctx context.Context) error {
	convs, err := c.svc.Conversations(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.conversations = convs
	c.mu.Unlock()
	c.notify()
	return nil
}

// LoadConversation fetches a transcript and makes it active.
func (c *Controller) LoadConversation(ctx context.Context, conversationID int64) error {
	msgs, err := c.svc.Messages(ctx, conversationID)
	if err != nil {
		c.setErr("Failed to load conversation")
		return err
	}
	c.mu.Lock()
	c.messages = msgs
	c.convID = conversationID
	c.lastErr = ""
	c.mu.Unlock()
	c.notify()
	return nil
}

// Send posts text to the assistant. The user message is appended
// optimistically with a transient id; on success the returned conversation
// id is adopted and the assistant reply appended, on failure the optimistic
// message is removed. Rejected while another send is in flight.
func (c *Controller) Send(ctx context.Context, text string) (service.ChatReply, error) {
	if strings.TrimSpace(text) == "" {
		return service.ChatReply{}, fmt.Errorf("message required")
	}

	c.mu.Lock()
	if c.sending {
		c.mu.Unlock()
		return service.ChatReply{}, fmt.Errorf("send already in flight")
	}
	c.sending = true
	convID := c.convID
	temp := service.Message{
		ID:             time.Now().UnixMilli(),
		ConversationID: convID,
		UserID:         c.userID,
		Role:           service.RoleUser,
		Content:        text,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	c.messages = append(c.messages, temp)
	c.lastErr = ""
	c.mu.Unlock()
	c.notify()

	reply, err := c.svc.SendChat(ctx, text, convID)

	c.mu.Lock()
	c.sending = false
	if err != nil {
		c.messages = removeMessage(c.messages, temp.ID)
		c.lastErr = "Failed to send message"
		c.mu.Unlock()
		c.notify()
		return service.ChatReply{}, err
	}
	c.convID = reply.ConversationID
	c.messages = append(c.messages, service.Message{
		ID:             reply.MessageID,
		ConversationID: reply.ConversationID,
		UserID:         c.userID,
		Role:           service.RoleAssistant,
		Content:        reply.Response,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	})
	c.mu.Unlock()
	c.notify()

	// Ordering and titles may have changed; a refresh failure here is not
	// surfaced, matching the page behavior.
	_ = c.LoadConversations(ctx)

	if MutatesTasks(reply, text) {
		c.reg.Publish(events.TasksChanged)
	}
	return reply, nil
}

// DeleteConversation removes a conversation. When it was the active one,
// the transcript is cleared as well.
func (c *Controller) DeleteConversation(ctx context.Context, conversationID int64) error {
	if err := c.svc.DeleteConversation(ctx, conversationID); err != nil {
		c.setErr("Failed to delete conversation")
		return err
	}
	c.mu.Lock()
	kept := c.conversations[:0:0]
	for _, conv := range c.conversations {
		if conv.ID != conversationID {
			kept = append(kept, conv)
		}
	}
	c.conversations = kept
	if c.convID == conversationID {
		c.messages = nil
		c.convID = 0
	}
	c.mu.Unlock()
	c.notify()
	return nil
}

func (c *Controller) setErr(msg string) {
	c.mu.Lock()
	c.lastErr = msg
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) notify() {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func removeMessage(msgs []service.Message, id int64) []service.Message {
	out := msgs[:0:0]
	for _, m := range msgs {
		if m.ID != id {
			out = append(out, m)
		}
	}
	return out
}
