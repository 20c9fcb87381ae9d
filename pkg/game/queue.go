package game

import (
	"sync"

	"github.com/google/uuid"
)

// Queue is the strict-FIFO matchmaking waiting list.
type Queue struct {
	mu      sync.Mutex
	entries []Client
}

// NewQueue creates an empty matchmaking queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends a waiting client. Returns false if the connection is
// already queued.
func (q *Queue) Enqueue(c Client) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, e := range q.entries {
		if e.ConnectionID() == c.ConnectionID() {
			return false
		}
	}

	q.entries = append(q.entries, c)
	return true
}

// PopPair removes and returns the two oldest entries once the queue holds
// at least two.
func (q *Queue) PopPair() (Client, Client, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) < 2 {
		return nil, nil, false
	}

	a, b := q.entries[0], q.entries[1]
	q.entries = q.entries[2:]
	return a, b, true
}

// Remove deletes the first entry matching the connection. Used for
// explicit cancellation and for disconnect-while-waiting; a no-op if the
// connection is not queued.
func (q *Queue) Remove(connID uuid.UUID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, e := range q.entries {
		if e.ConnectionID() == connID {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of waiting connections.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}
