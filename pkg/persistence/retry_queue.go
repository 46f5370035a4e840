package persistence

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrQueueFull is returned when the bounded retry queue cannot absorb
// another deferred write.
var ErrQueueFull = errors.New("persistence retry queue is full")

// RetryQueueEntry is a deferred write request created on write failure.
// Removed only by an explicit drain that replays entries.
type RetryQueueEntry struct {
	Payload    Payload
	Reason     string
	EnqueuedAt time.Time
}

// RetryQueue is a bounded in-memory buffer absorbing persistence failures.
// Appends are safe for concurrent use; drains are serialized so overlapping
// drains cannot replay the same entry twice.
type RetryQueue struct {
	mu       sync.Mutex
	drainMu  sync.Mutex
	entries  []RetryQueueEntry
	capacity int
}

func NewRetryQueue(capacity int) *RetryQueue {
	if capacity <= 0 {
		capacity = 256
	}
	return &RetryQueue{capacity: capacity}
}

func (q *RetryQueue) Enqueue(payload Payload, reason string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) >= q.capacity {
		return ErrQueueFull
	}
	q.entries = append(q.entries, RetryQueueEntry{
		Payload:    payload,
		Reason:     reason,
		EnqueuedAt: time.Now(),
	})
	return nil
}

func (q *RetryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Snapshot returns a copy of the queued entries in arrival order.
func (q *RetryQueue) Snapshot() []RetryQueueEntry {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]RetryQueueEntry, len(q.entries))
	copy(out, q.entries)
	return out
}

// DrainResult reports the outcome of a drain pass.
type DrainResult struct {
	Replayed  int
	Succeeded int
	Remaining int
}

// Drain replays all queued entries in arrival order through replay, removing
// only the entries that succeed. Failed entries stay queued in their original
// order. Entries enqueued while the drain is running are preserved.
func (q *RetryQueue) Drain(ctx context.Context, replay func(ctx context.Context, entry RetryQueueEntry) error) DrainResult {
	q.drainMu.Lock()
	defer q.drainMu.Unlock()

	q.mu.Lock()
	batch := q.entries
	q.entries = nil
	q.mu.Unlock()

	var kept []RetryQueueEntry
	result := DrainResult{Replayed: len(batch)}

	for i, entry := range batch {
		if ctx.Err() != nil {
			kept = append(kept, batch[i:]...)
			break
		}
		if err := replay(ctx, entry); err != nil {
			kept = append(kept, entry)
			continue
		}
		result.Succeeded++
	}

	q.mu.Lock()
	// Failed entries go back in front of anything enqueued mid-drain.
	q.entries = append(kept, q.entries...)
	result.Remaining = len(q.entries)
	q.mu.Unlock()

	return result
}
