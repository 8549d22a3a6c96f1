// Package notify provides user-visible notifications (toasts) and the
// one-shot guard used to collapse bursts of identical failures.
package notify

import "sync"

// Level is the severity of a notification.
type Level string

const (
	// LevelSuccess is used for completed operations.
	LevelSuccess Level = "success"
	// LevelInfo is used for neutral information.
	LevelInfo Level = "info"
	// LevelWarning is used for recoverable problems.
	LevelWarning Level = "warning"
	// LevelError is used for failures and denials.
	LevelError Level = "error"
)

// Notification is one message shown to the user.
type Notification struct {
	Level   Level
	Message string
}

// Notifier receives notifications.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

// Queue collects notifications until they are drained by a renderer.
// It is safe for concurrent use.
type Queue struct {
	mu    sync.Mutex
	items []Notification
	limit int
}

// NewQueue creates a queue keeping at most limit pending notifications.
// The oldest entries are dropped once the limit is reached. A limit below 1 means unbounded.
func NewQueue(limit int) *Queue {
	return &Queue{limit: limit}
}

// Notify appends n to the queue.
func (q *Queue) Notify(n Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, n)

	if q.limit > 0 && len(q.items) > q.limit {
		q.items = q.items[len(q.items)-q.limit:]
	}
}

// Drain returns all pending notifications and empties the queue.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.items
	q.items = nil

	return out
}

// Len returns the number of pending notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}

// Error is a shorthand for an error level notification.
func Error(msg string) Notification {
	return Notification{Level: LevelError, Message: msg}
}

// Warning is a shorthand for a warning level notification.
func Warning(msg string) Notification {
	return Notification{Level: LevelWarning, Message: msg}
}

// Success is a shorthand for a success level notification.
func Success(msg string) Notification {
	return Notification{Level: LevelSuccess, Message: msg}
}
