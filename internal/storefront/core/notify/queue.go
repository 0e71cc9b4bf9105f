// Package notify implements the user-visible notification queue.
//
// Notices are posted by the cart and checkout flows and drained by the view
// layer on its own schedule, so posting never blocks the caller. The queue
// is bounded: when full, the oldest notice is dropped to make room.
package notify

import (
	"sync"
	"time"
)

// Level classifies how the view should present a notice.
type Level string

const (
	// LevelInfo is a transient confirmation (e.g. "added to cart").
	LevelInfo Level = "info"
	// LevelAlert demands the customer's attention (validation or
	// checkout failures).
	LevelAlert Level = "alert"
)

// Notice is a single user-visible message.
type Notice struct {
	Level     Level
	Message   string
	CreatedAt time.Time
}

// Queue is a bounded FIFO of notices. Safe for concurrent use.
type Queue struct {
	mu       sync.Mutex
	notices  []Notice
	capacity int
}

// NewQueue returns a queue holding at most capacity notices.
// A capacity of zero or below falls back to 32.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 32
	}
	return &Queue{capacity: capacity}
}

// Post appends a notice. When the queue is full the oldest notice is
// discarded; Post never blocks and never fails.
func (q *Queue) Post(level Level, message string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.notices) >= q.capacity {
		q.notices = q.notices[1:]
	}
	q.notices = append(q.notices, Notice{
		Level:     level,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})
}

// Drain removes and returns all pending notices in posting order.
func (q *Queue) Drain() []Notice {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.notices
	q.notices = nil
	return out
}

// Len reports the number of pending notices.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.notices)
}
