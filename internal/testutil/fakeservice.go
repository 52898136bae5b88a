// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"taskflow/internal/service"
)

// DefaultUserID is the signed-in user id used by the fake.
const DefaultUserID = "user-1"

// ErrBackend is a generic injected backend failure.
var ErrBackend = errors.New("backend unavailable")

// FakeService is an in-memory implementation of service.Service for testing.
// Error injection fields make individual operations fail; On* hooks run
// while the call is in flight, letting tests observe optimistic state.
type FakeService struct {
	mu     sync.RWMutex
	nextID int64
	tasks  []service.Task
	convs  []service.Conversation
	msgs   map[int64][]service.Message
	user   service.User

	// Error injection for testing
	ListTasksErr          error
	CreateTaskErr         error
	GetTaskErr            error
	UpdateTaskErr         error
	ToggleTaskErr         error
	DeleteTaskErr         error
	ProfileErr            error
	UpdateProfileErr      error
	SendChatErr           error
	ConversationsErr      error
	MessagesErr           error
	DeleteConversationErr error

	// Hooks invoked at the start of the corresponding call.
	OnCreateTask func()
	OnToggleTask func()
	OnDeleteTask func()
	OnUpdateTask func()
	OnSendChat   func()

	// Scripted chat behavior. A nil ChatToolCalls leaves the field out of
	// the reply, as an older backend would.
	ChatResponse  string
	ChatToolCalls []service.ToolCall
}

// NewFakeService creates a fake with a signed-in user and no tasks.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID: 100,
		msgs:   make(map[int64][]service.Message),
		user: service.User{
			ID:    DefaultUserID,
			Email: "user@example.com",
			Name:  "Test User",
		},
		ChatResponse: "Done.",
	}
}

// AddTask seeds a task and returns it.
func (f *FakeService) AddTask(title, description string, completed bool) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	now := time.Now().UTC().Format(time.RFC3339)
	t := service.Task{
		ID:          f.nextID,
		UserID:      DefaultUserID,
		Title:       title,
		Description: description,
		Completed:   completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.tasks = append(f.tasks, t)
	return t
}

// AddConversation seeds a conversation and returns it.
func (f *FakeService) AddConversation() service.Conversation {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	now := time.Now().UTC().Format(time.RFC3339)
	conv := service.Conversation{ID: f.nextID, UserID: DefaultUserID, CreatedAt: now, UpdatedAt: now}
	f.convs = append(f.convs, conv)
	return conv
}

// TaskByID returns a seeded task by id for assertions.
func (f *FakeService) TaskByID(id int64) (service.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, in service.TaskCreate) (service.Task, error) {
	if f.OnCreateTask != nil {
		f.OnCreateTask()
	}
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	return f.AddTask(in.Title, in.Description, false), nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, taskID int64) (service.Task, error) {
	if f.GetTaskErr != nil {
		return service.Task{}, f.GetTaskErr
	}
	if t, ok := f.TaskByID(taskID); ok {
		return t, nil
	}
	return service.Task{}, fmt.Errorf("task not found: %d", taskID)
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, taskID int64, in service.TaskUpdate) (service.Task, error) {
	if f.OnUpdateTask != nil {
		f.OnUpdateTask()
	}
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == taskID {
			if in.Title != nil {
				f.tasks[i].Title = *in.Title
			}
			if in.Description != nil {
				f.tasks[i].Description = *in.Description
			}
			if in.Completed != nil {
				f.tasks[i].Completed = *in.Completed
			}
			f.tasks[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			return f.tasks[i], nil
		}
	}
	return service.Task{}, fmt.Errorf("task not found: %d", taskID)
}

// ToggleTask implements service.Service.
func (f *FakeService) ToggleTask(ctx context.Context, taskID int64) (service.Task, error) {
	if f.OnToggleTask != nil {
		f.OnToggleTask()
	}
	if f.ToggleTaskErr != nil {
		return service.Task{}, f.ToggleTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == taskID {
			f.tasks[i].Completed = !f.tasks[i].Completed
			f.tasks[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			return f.tasks[i], nil
		}
	}
	return service.Task{}, fmt.Errorf("task not found: %d", taskID)
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, taskID int64) error {
	if f.OnDeleteTask != nil {
		f.OnDeleteTask()
	}
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == taskID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("task not found: %d", taskID)
}

// Profile implements service.Service.
func (f *FakeService) Profile(ctx context.Context) (service.User, error) {
	if f.ProfileErr != nil {
		return service.User{}, f.ProfileErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.user, nil
}

// UpdateProfile implements service.Service.
func (f *FakeService) UpdateProfile(ctx context.Context, in service.ProfileUpdate) (service.User, error) {
	if f.UpdateProfileErr != nil {
		return service.User{}, f.UpdateProfileErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if in.Name != nil {
		f.user.Name = *in.Name
	}
	if in.Email != nil {
		f.user.Email = *in.Email
	}
	if in.Bio != nil {
		f.user.Bio = *in.Bio
	}
	return f.user, nil
}

// SendChat implements service.Service.
func (f *FakeService) SendChat(ctx context.Context, message string, conversationID int64) (service.ChatReply, error) {
	if f.OnSendChat != nil {
		f.OnSendChat()
	}
	if f.SendChatErr != nil {
		return service.ChatReply{}, f.SendChatErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	if conversationID == 0 {
		f.nextID++
		conversationID = f.nextID
		f.convs = append(f.convs, service.Conversation{
			ID: conversationID, UserID: DefaultUserID, CreatedAt: now, UpdatedAt: now,
		})
	}

	f.nextID++
	userMsg := service.Message{
		ID: f.nextID, ConversationID: conversationID, UserID: DefaultUserID,
		Role: service.RoleUser, Content: message, CreatedAt: now,
	}
	f.nextID++
	assistantMsg := service.Message{
		ID: f.nextID, ConversationID: conversationID, UserID: DefaultUserID,
		Role: service.RoleAssistant, Content: f.ChatResponse, CreatedAt: now,
	}
	f.msgs[conversationID] = append(f.msgs[conversationID], userMsg, assistantMsg)

	return service.ChatReply{
		Response:       f.ChatResponse,
		ConversationID: conversationID,
		MessageID:      assistantMsg.ID,
		ToolCalls:      f.ChatToolCalls,
	}, nil
}

// Conversations implements service.Service.
func (f *FakeService) Conversations(ctx context.Context) ([]service.Conversation, error) {
	if f.ConversationsErr != nil {
		return nil, f.ConversationsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Conversation, len(f.convs))
	copy(out, f.convs)
	return out, nil
}

// Messages implements service.Service.
func (f *FakeService) Messages(ctx context.Context, conversationID int64) ([]service.Message, error) {
	if f.MessagesErr != nil {
		return nil, f.MessagesErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	msgs, ok := f.msgs[conversationID]
	if !ok {
		return nil, fmt.Errorf("conversation not found: %d", conversationID)
	}
	out := make([]service.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

// DeleteConversation implements service.Service.
func (f *FakeService) DeleteConversation(ctx context.Context, conversationID int64) error {
	if f.DeleteConversationErr != nil {
		return f.DeleteConversationErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, conv := range f.convs {
		if conv.ID == conversationID {
			f.convs = append(f.convs[:i], f.convs[i+1:]...)
			delete(f.msgs, conversationID)
			return nil
		}
	}
	return fmt.Errorf("conversation not found: %d", conversationID)
}
