// Package service defines the backend-agnostic interface for TaskFlow operations.
package service

import "context"

// Service defines the interface for TaskFlow backend operations.
// All REST calls go through this interface.
// Commands never import the HTTP client directly.
type Service interface {
	// ListTasks returns all tasks for the signed-in user in API order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task and returns the server-assigned entity.
	CreateTask(ctx context.Context, in TaskCreate) (Task, error)

	// GetTask returns a single task by id.
	GetTask(ctx context.Context, taskID int64) (Task, error)

	// UpdateTask applies a partial update and returns the updated entity.
	UpdateTask(ctx context.Context, taskID int64, in TaskUpdate) (Task, error)

	// ToggleTask flips the completion state server-side and returns the result.
	ToggleTask(ctx context.Context, taskID int64) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, taskID int64) error

	// Profile returns the signed-in user's profile.
	Profile(ctx context.Context) (User, error)

	// UpdateProfile applies a partial profile update and returns the result.
	UpdateProfile(ctx context.Context, in ProfileUpdate) (User, error)

	// SendChat sends a message to the assistant. conversationID zero starts
	// a new conversation; the reply carries the id to continue with.
	SendChat(ctx context.Context, message string, conversationID int64) (ChatReply, error)

	// Conversations returns the user's conversations, most recent first.
	Conversations(ctx context.Context) ([]Conversation, error)

	// Messages returns the transcript of one conversation in order.
	Messages(ctx context.Context, conversationID int64) ([]Message, error)

	// DeleteConversation deletes a conversation and its messages.
	DeleteConversation(ctx context.Context, conversationID int64) error
}
