// Package service defines the backend-agnostic interface for TaskFlow operations.
package service

// Task represents a single task item owned by a user.
type Task struct {
	ID          int64  `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// TaskCreate is the payload for creating a task.
type TaskCreate struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// TaskUpdate is the payload for updating a task. Nil fields are left unchanged.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// User is a TaskFlow account profile.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Bio   string `json:"bio,omitempty"`
}

// ProfileUpdate is the payload for updating a profile. Nil fields are left unchanged.
type ProfileUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Bio   *string `json:"bio,omitempty"`
}

// Conversation is a chat thread with the assistant.
type Conversation struct {
	ID        int64  `json:"id"`
	UserID    string `json:"user_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Message is a single entry in a conversation transcript.
type Message struct {
	ID             int64  `json:"id"`
	ConversationID int64  `json:"conversation_id"`
	UserID         string `json:"user_id"`
	Role           string `json:"role"` // "user" or "assistant"
	Content        string `json:"content"`
	CreatedAt      string `json:"created_at"`
}

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ToolCall is a structured task mutation performed by the assistant.
type ToolCall struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// ChatReply is the backend's answer to a sent message.
type ChatReply struct {
	Response       string     `json:"response"`
	ConversationID int64      `json:"conversation_id"`
	MessageID      int64      `json:"message_id"`
	ToolCalls      []ToolCall `json:"tool_calls"`
}
