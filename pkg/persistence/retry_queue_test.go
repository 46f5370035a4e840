package persistence

import (
	"context"
	"fmt"
	"testing"

	"adaptive-assessment-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payloadForStem(stem string) Payload {
	return Payload{
		RoundId: "sess_1_2025-01-15T10:30:00Z",
		Item:    store.DraftItem{Type: store.TypeTrueFalse, Stem: stem, CorrectAnswer: "true"},
	}
}

func TestRetryQueueEnqueueBounded(t *testing.T) {
	queue := NewRetryQueue(2)

	require.NoError(t, queue.Enqueue(payloadForStem("one"), "db down"))
	require.NoError(t, queue.Enqueue(payloadForStem("two"), "db down"))
	assert.ErrorIs(t, queue.Enqueue(payloadForStem("three"), "db down"), ErrQueueFull)
	assert.Equal(t, 2, queue.Len())
}

func TestRetryQueueSnapshotPreservesOrder(t *testing.T) {
	queue := NewRetryQueue(8)
	queue.Enqueue(payloadForStem("one"), "timeout")
	queue.Enqueue(payloadForStem("two"), "timeout")

	entries := queue.Snapshot()

	require.Len(t, entries, 2)
	assert.Equal(t, "one", entries[0].Payload.Item.Stem)
	assert.Equal(t, "two", entries[1].Payload.Item.Stem)
	assert.False(t, entries[0].EnqueuedAt.IsZero())
}

func TestRetryQueueDrainRemovesSucceeded(t *testing.T) {
	queue := NewRetryQueue(8)
	queue.Enqueue(payloadForStem("one"), "timeout")
	queue.Enqueue(payloadForStem("two"), "timeout")

	result := queue.Drain(context.Background(), func(_ context.Context, _ RetryQueueEntry) error {
		return nil
	})

	assert.Equal(t, DrainResult{Replayed: 2, Succeeded: 2, Remaining: 0}, result)
	assert.Zero(t, queue.Len())
}

func TestRetryQueueDrainKeepsFailures(t *testing.T) {
	queue := NewRetryQueue(8)
	queue.Enqueue(payloadForStem("one"), "timeout")
	queue.Enqueue(payloadForStem("two"), "timeout")
	queue.Enqueue(payloadForStem("three"), "timeout")

	result := queue.Drain(context.Background(), func(_ context.Context, entry RetryQueueEntry) error {
		if entry.Payload.Item.Stem == "two" {
			return fmt.Errorf("still failing")
		}
		return nil
	})

	assert.Equal(t, DrainResult{Replayed: 3, Succeeded: 2, Remaining: 1}, result)
	entries := queue.Snapshot()
	require.Len(t, entries, 1)
	assert.Equal(t, "two", entries[0].Payload.Item.Stem)
}

func TestRetryQueueDrainFailuresStayInFront(t *testing.T) {
	queue := NewRetryQueue(8)
	queue.Enqueue(payloadForStem("one"), "timeout")

	queue.Drain(context.Background(), func(_ context.Context, _ RetryQueueEntry) error {
		// Simulate a writer failing mid-drain while new failures arrive.
		queue.Enqueue(payloadForStem("late"), "timeout")
		return fmt.Errorf("still failing")
	})

	entries := queue.Snapshot()
	require.Len(t, entries, 2)
	assert.Equal(t, "one", entries[0].Payload.Item.Stem)
	assert.Equal(t, "late", entries[1].Payload.Item.Stem)
}

func TestRetryQueueDrainStopsOnCancelledContext(t *testing.T) {
	queue := NewRetryQueue(8)
	queue.Enqueue(payloadForStem("one"), "timeout")
	queue.Enqueue(payloadForStem("two"), "timeout")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := queue.Drain(ctx, func(_ context.Context, _ RetryQueueEntry) error {
		t.Fatal("replay must not run under a cancelled context")
		return nil
	})

	assert.Zero(t, result.Succeeded)
	assert.Equal(t, 2, queue.Len())
}

func TestRetryQueueDefaultCapacity(t *testing.T) {
	queue := NewRetryQueue(0)

	for i := 0; i < 256; i++ {
		require.NoError(t, queue.Enqueue(payloadForStem(fmt.Sprintf("item %d", i)), "db down"))
	}
	assert.ErrorIs(t, queue.Enqueue(payloadForStem("overflow"), "db down"), ErrQueueFull)
}
