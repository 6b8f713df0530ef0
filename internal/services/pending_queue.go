package services

import (
	"sync"

	"taskassistant/internal/models"
)

// PendingQueue holds task requests produced by chat tools until they are
// materialized. Each request is handed out by exactly one Drain call.
type PendingQueue struct {
	mu    sync.Mutex
	items []models.PendingTaskRequest
}

func NewPendingQueue() *PendingQueue {
	return &PendingQueue{}
}

func (q *PendingQueue) Enqueue(req models.PendingTaskRequest) {
	q.mu.Lock()
	q.items = append(q.items, req)
	q.mu.Unlock()
}

// Drain removes and returns the user's requests in enqueue order. Requests
// of other users stay queued.
func (q *PendingQueue) Drain(userID string) []models.PendingTaskRequest {
	q.mu.Lock()
	defer q.mu.Unlock()

	var out []models.PendingTaskRequest
	rest := q.items[:0]
	for _, it := range q.items {
		if it.UserID == userID {
			out = append(out, it)
		} else {
			rest = append(rest, it)
		}
	}
	// clear the tail so drained requests are not retained
	for i := len(rest); i < len(q.items); i++ {
		q.items[i] = models.PendingTaskRequest{}
	}
	q.items = rest
	return out
}

// Count returns how many requests are queued for the user.
func (q *PendingQueue) Count(userID string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, it := range q.items {
		if it.UserID == userID {
			n++
		}
	}
	return n
}

func (q *PendingQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
