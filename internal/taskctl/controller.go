// Package taskctl maintains the visible task collection for the signed-in
// user and keeps it consistent with the remote store. Every mutation is
// applied optimistically, then confirmed against the server response or
// rolled back on failure.
package taskctl

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"taskflow/internal/service"
)

// Filter status values.
const (
	StatusAll       = "all"
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

// ValidStatus reports whether s is a recognized filter status.
func ValidStatus(s string) bool {
	return s == StatusAll || s == StatusCompleted || s == StatusPending
}

// Controller owns the in-memory task collection.
type Controller struct {
	mu       sync.Mutex
	svc      service.Service
	userID   string
	tasks    []service.Task
	lastErr  string
	onChange func()
}

// New creates a controller for the given user.
func New(svc service.Service, userID string) *Controller {
	return &Controller{svc: svc, userID: userID}
}

// SetOnChange registers a callback invoked after every visible state change.
// Used by the TUI to repaint; invoked without the controller lock held.
func (c *Controller) SetOnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Tasks returns a snapshot of the current collection.
func (c *Controller) Tasks() []service.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]service.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Err returns the last surfaced error message, or "".
func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Load fetches all tasks and replaces the collection wholesale.
// On failure the prior collection is left untouched.
func (c *Controller) Load(ctx context.Context) error {
	tasks, err := c.svc.ListTasks(ctx)
	if err != nil {
		c.setErr("Failed to fetch tasks")
		return err
	}
	c.mu.Lock()
	c.tasks = tasks
	c.lastErr = ""
	c.mu.Unlock()
	c.notify()
	return nil
}

// Create inserts a placeholder at the head of the list, then issues the
// create request. On success the placeholder is replaced by the
// server-assigned entity; on failure it is removed and the typed text is
// discarded.
func (c *Controller) Create(ctx context.Context, title, description string) (service.Task, error) {
	if strings.TrimSpace(title) == "" {
		c.setErr("Title is required")
		return service.Task{}, fmt.Errorf("title required")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	temp := service.Task{
		ID:          time.Now().UnixMilli(), // transient placeholder id
		UserID:      c.userID,
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	c.mu.Lock()
	c.tasks = append([]service.Task{temp}, c.tasks...)
	c.lastErr = ""
	c.mu.Unlock()
	c.notify()

	created, err := c.svc.CreateTask(ctx, service.TaskCreate{Title: title, Description: description})

	c.mu.Lock()
	if err != nil {
		c.tasks = removeByID(c.tasks, temp.ID)
		c.lastErr = "Failed to create task"
	} else {
		for i := range c.tasks {
			if c.tasks[i].ID == temp.ID {
				c.tasks[i] = created
				break
			}
		}
	}
	c.mu.Unlock()
	c.notify()

	if err != nil {
		return service.Task{}, err
	}
	return created, nil
}

// Toggle flips the completion flag immediately, then reconciles completed
// and updated_at from the server response. On failure the flag is flipped
// back to its exact prior value.
func (c *Controller) Toggle(ctx context.Context, taskID int64) error {
	c.mu.Lock()
	idx := indexByID(c.tasks, taskID)
	if idx < 0 {
		c.mu.Unlock()
		return fmt.Errorf("task not found: %d", taskID)
	}
	c.tasks[idx].Completed = !c.tasks[idx].Completed
	c.mu.Unlock()
	c.notify()

	updated, err := c.svc.ToggleTask(ctx, taskID)

	c.mu.Lock()
	if idx := indexByID(c.tasks, taskID); idx >= 0 {
		if err != nil {
			c.tasks[idx].Completed = !c.tasks[idx].Completed
			c.lastErr = "Failed to update task"
		} else {
			// The server is authoritative even if a side effect changed
			// the value to something other than the optimistic flip.
			c.tasks[idx].Completed = updated.Completed
			c.tasks[idx].UpdatedAt = updated.UpdatedAt
		}
	}
	c.mu.Unlock()
	c.notify()
	return err
}

// Delete removes the task immediately, retaining a copy. On failure the
// retained copy is re-inserted at the head of the list.
func (c *Controller) Delete(ctx context.Context, taskID int64) error {
	c.mu.Lock()
	idx := indexByID(c.tasks, taskID)
	if idx < 0 {
		c.mu.Unlock()
		return fmt.Errorf("task not found: %d", taskID)
	}
	retained := c.tasks[idx]
	c.tasks = removeByID(c.tasks, taskID)
	c.mu.Unlock()
	c.notify()

	err := c.svc.DeleteTask(ctx, taskID)
	if err != nil {
		c.mu.Lock()
		c.tasks = append([]service.Task{retained}, c.tasks...)
		c.lastErr = "Failed to delete task"
		c.mu.Unlock()
		c.notify()
	}
	return err
}

// Update applies a partial title/description edit optimistically, then
// replaces the entry with the server entity. On failure the prior entity
// is restored unchanged.
func (c *Controller) Update(ctx context.Context, taskID int64, title, description *string) error {
	if title != nil && strings.TrimSpace(*title) == "" {
		c.setErr("Title is required")
		return fmt.Errorf("title required")
	}

	c.mu.Lock()
	idx := indexByID(c.tasks, taskID)
	if idx < 0 {
		c.mu.Unlock()
		return fmt.Errorf("task not found: %d", taskID)
	}
	prior := c.tasks[idx]
	if title != nil {
		c.tasks[idx].Title = *title
	}
	if description != nil {
		c.tasks[idx].Description = *description
	}
	c.mu.Unlock()
	c.notify()

	updated, err := c.svc.UpdateTask(ctx, taskID, service.TaskUpdate{Title: title, Description: description})

	c.mu.Lock()
	if idx := indexByID(c.tasks, taskID); idx >= 0 {
		if err != nil {
			c.tasks[idx] = prior
			c.lastErr = "Failed to update task"
		} else {
			c.tasks[idx] = updated
		}
	}
	c.mu.Unlock()
	c.notify()
	return err
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

func indexByID(tasks []service.Task, id int64) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func removeByID(tasks []service.Task, id int64) []service.Task {
	out := tasks[:0:0]
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// Filter returns the subset of tasks matching the search term and status.
// Matching is case-insensitive over title and description; StatusAll
// disables the completion filter. Pure; recomputed on demand.
func Filter(tasks []service.Task, search, status string) []service.Task {
	needle := strings.ToLower(search)
	var out []service.Task
	for _, t := range tasks {
		matchesSearch := needle == "" ||
			strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle)
		matchesStatus := status == StatusAll ||
			(status == StatusCompleted && t.Completed) ||
			(status == StatusPending && !t.Completed)
		if matchesSearch && matchesStatus {
			out = append(out, t)
		}
	}
	return out
}

// Counts returns total, completed, and pending counts for the dashboard.
func Counts(tasks []service.Task) (total, completed, pending int) {
	total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return total, completed, total - completed
}
