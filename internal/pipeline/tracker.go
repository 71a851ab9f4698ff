package pipeline

import (
	"sync"

	"desknerd/internal/operation"
)

// Tracker holds every non-terminal operation. An operation is queued
// while admission runs and active while its handler runs; it leaves the
// tracker on every exit path, including panics.
type Tracker struct {
	mu     sync.Mutex
	queued map[string]*operation.Operation
	active map[string]*operation.Operation
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		queued: make(map[string]*operation.Operation),
		active: make(map[string]*operation.Operation),
	}
}

// Enqueue registers an operation entering admission.
func (t *Tracker) Enqueue(op *operation.Operation) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.queued[op.ID] = op
}

// Activate moves an admitted operation from queued to active.
func (t *Tracker) Activate(op *operation.Operation) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.queued, op.ID)
	t.active[op.ID] = op
}

// Remove drops the operation from both sets. Idempotent.
func (t *Tracker) Remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.queued, id)
	delete(t.active, id)
}

// ActiveCount reports operations currently executing.
func (t *Tracker) ActiveCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.active)
}

// QueuedCount reports operations currently in admission.
func (t *Tracker) QueuedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.queued)
}
