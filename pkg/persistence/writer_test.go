package persistence

import (
	"context"
	"fmt"
	"testing"

	"adaptive-assessment-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuestionStore struct {
	failures int // number of initial calls that fail
	calls    int
	saved    []Payload
}

func (s *fakeQuestionStore) SaveQuestion(_ context.Context, payload Payload, _ RoundId) error {
	s.calls++
	if s.calls <= s.failures {
		return fmt.Errorf("connection refused")
	}
	s.saved = append(s.saved, payload)
	return nil
}

func newTestWriter(store *fakeQuestionStore) *Writer {
	return NewWriter(store, NewRetryQueue(8), logger.NewNopLogger())
}

func TestWriterPersistSuccess(t *testing.T) {
	store := &fakeQuestionStore{}
	writer := newTestWriter(store)

	result := writer.Persist(context.Background(), payloadForStem("What is a mutex?"))

	assert.True(t, result.Success)
	assert.False(t, result.QueuedForRetry)
	assert.Equal(t, "sess", result.SessionId)
	assert.Equal(t, 1, result.Round)
	assert.NotEqual(t, uuid.Nil, result.QuestionId)
	assert.Zero(t, writer.Queue().Len())
}

func TestWriterPersistFailureQueuesExactlyOnce(t *testing.T) {
	store := &fakeQuestionStore{failures: 1}
	writer := newTestWriter(store)

	result := writer.Persist(context.Background(), payloadForStem("What is a mutex?"))

	assert.False(t, result.Success)
	assert.True(t, result.QueuedForRetry)
	assert.Equal(t, 1, store.calls, "failed writes must not retry inline")
	require.Equal(t, 1, writer.Queue().Len())

	entry := writer.Queue().Snapshot()[0]
	assert.Equal(t, result.QuestionId, entry.Payload.QuestionId)
	assert.Equal(t, "connection refused", entry.Reason)
}

func TestWriterPersistFullQueueReportsDropped(t *testing.T) {
	store := &fakeQuestionStore{failures: 2}
	writer := NewWriter(store, NewRetryQueue(1), logger.NewNopLogger())

	first := writer.Persist(context.Background(), payloadForStem("one"))
	require.True(t, first.QueuedForRetry)

	second := writer.Persist(context.Background(), payloadForStem("two"))

	assert.False(t, second.Success)
	assert.False(t, second.QueuedForRetry, "a dropped payload must not claim it was queued")
	assert.Equal(t, 1, writer.Queue().Len())
	assert.Equal(t, "one", writer.Queue().Snapshot()[0].Payload.Item.Stem)
}

func TestWriterPreservesCallerQuestionId(t *testing.T) {
	store := &fakeQuestionStore{}
	writer := newTestWriter(store)

	payload := payloadForStem("What is a mutex?")
	payload.QuestionId = uuid.New()

	result := writer.Persist(context.Background(), payload)

	assert.Equal(t, payload.QuestionId, result.QuestionId)
}

func TestWriterDrainOnceReplaysDeferredWrites(t *testing.T) {
	store := &fakeQuestionStore{failures: 1}
	writer := newTestWriter(store)

	first := writer.Persist(context.Background(), payloadForStem("What is a mutex?"))
	require.False(t, first.Success)

	result := writer.DrainOnce(context.Background())

	assert.Equal(t, DrainResult{Replayed: 1, Succeeded: 1, Remaining: 0}, result)
	require.Len(t, store.saved, 1)
	assert.Equal(t, first.QuestionId, store.saved[0].QuestionId)
}

func TestWriterDrainOncePartialFailure(t *testing.T) {
	store := &fakeQuestionStore{failures: 3}
	writer := newTestWriter(store)

	writer.Persist(context.Background(), payloadForStem("one"))
	writer.Persist(context.Background(), payloadForStem("two"))

	// First drained entry fails again (third store call), second succeeds.
	result := writer.DrainOnce(context.Background())

	assert.Equal(t, DrainResult{Replayed: 2, Succeeded: 1, Remaining: 1}, result)
	entries := writer.Queue().Snapshot()
	require.Len(t, entries, 1)
	assert.Equal(t, "one", entries[0].Payload.Item.Stem)
}
