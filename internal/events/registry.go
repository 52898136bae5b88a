// Package events provides an in-process observer registry for cross-view
// notifications. Subscribers registered for a topic are invoked synchronously
// on every publish, so a mounted tasks view always sees chat-driven changes.
package events

import "sync"

// TasksChanged is published after the assistant reports a task mutation.
const TasksChanged = "tasks.changed"

// Registry fans out topic notifications to registered subscribers.
type Registry struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]func()
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{subs: make(map[string]map[int]func())}
}

// Subscribe registers fn for topic and returns an unsubscribe function.
// Unsubscribing twice is a no-op.
func (r *Registry) Subscribe(topic string, fn func()) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.subs[topic] == nil {
		r.subs[topic] = make(map[int]func())
	}
	id := r.nextID
	r.nextID++
	r.subs[topic][id] = fn

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subs[topic], id)
	}
}

// Publish invokes every subscriber currently registered for topic.
// Subscribers run outside the registry lock so they may re-subscribe
// or publish without deadlocking.
func (r *Registry) Publish(topic string) {
	r.mu.Lock()
	fns := make([]func(), 0, len(r.subs[topic]))
	for _, fn := range r.subs[topic] {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
