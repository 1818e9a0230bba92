// ABOUTME: Notification manager with an instance-scoped id counter.
// ABOUTME: Keeps at most Limit visible notifications, newest first.
package notify

import (
	"strconv"
	"sync"
)

// Limit is the number of notifications kept visible.
const Limit = 1

// Kind distinguishes success messages from rejections.
type Kind string

const (
	Success Kind = "success"
	Info    Kind = "info"
	Error   Kind = "error"
)

// Notification is a message shown to the user.
type Notification struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Manager issues notifications and tracks the visible ones.
type Manager struct {
	mu      sync.Mutex
	counter uint64
	limit   int
	visible []Notification
	sinks   []func(Notification)
}

// NewManager creates a manager with the default limit.
func NewManager() *Manager {
	return &Manager{limit: Limit}
}

// WithLimit overrides how many notifications stay visible.
func (m *Manager) WithLimit(n int) *Manager {
	if n > 0 {
		m.limit = n
	}
	return m
}

// Subscribe registers a callback invoked for every new notification.
func (m *Manager) Subscribe(fn func(Notification)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sinks = append(m.sinks, fn)
}

// Notify issues a notification and returns it.
func (m *Manager) Notify(kind Kind, title, description string) Notification {
	m.mu.Lock()
	m.counter++
	n := Notification{
		ID:          strconv.FormatUint(m.counter, 10),
		Kind:        kind,
		Title:       title,
		Description: description,
	}
	m.visible = append([]Notification{n}, m.visible...)
	if len(m.visible) > m.limit {
		m.visible = m.visible[:m.limit]
	}
	sinks := append([]func(Notification){}, m.sinks...)
	m.mu.Unlock()

	for _, fn := range sinks {
		fn(n)
	}
	return n
}

// Success is shorthand for Notify(Success, ...).
func (m *Manager) Success(title, description string) Notification {
	return m.Notify(Success, title, description)
}

// Reject is shorthand for Notify(Error, ...).
func (m *Manager) Reject(title, description string) Notification {
	return m.Notify(Error, title, description)
}

// Dismiss hides a notification. An empty id dismisses all.
func (m *Manager) Dismiss(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id == "" {
		m.visible = nil
		return
	}
	kept := m.visible[:0]
	for _, n := range m.visible {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	m.visible = kept
}

// Visible returns the notifications currently shown, newest first.
func (m *Manager) Visible() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Notification(nil), m.visible...)
}
