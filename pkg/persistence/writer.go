package persistence

import (
	"context"

	"adaptive-assessment-be/internal/pkg/logger"
	"adaptive-assessment-be/pkg/store"

	"github.com/google/uuid"
)

// Payload carries one validated item toward durable storage.
type Payload struct {
	QuestionId      uuid.UUID       `json:"question_id"`
	RoundId         string          `json:"round_id"` // raw composite convention
	Item            store.DraftItem `json:"item"`
	ValidationScore float64         `json:"validation_score"`
	Explanation     string          `json:"explanation,omitempty"`
}

// Result reports the outcome of one write attempt. A failed write never
// surfaces an error to the caller; it degrades to queued_for_retry.
type Result struct {
	Success        bool      `json:"success"`
	QueuedForRetry bool      `json:"queued_for_retry"`
	QuestionId     uuid.UUID `json:"question_id"`
	SessionId      string    `json:"session_id"`
	Round          int       `json:"round"`
}

// QuestionStore is the durable storage consumed by the writer. Implemented
// by the GORM-backed question repository adapter.
type QuestionStore interface {
	SaveQuestion(ctx context.Context, payload Payload, round RoundId) error
}

// Writer persists validated items with retry-queue degradation.
type Writer struct {
	storage QuestionStore
	queue   *RetryQueue
	logger  logger.ILogger
}

func NewWriter(storage QuestionStore, queue *RetryQueue, log logger.ILogger) *Writer {
	return &Writer{
		storage: storage,
		queue:   queue,
		logger:  log,
	}
}

// Queue exposes the retry queue for drain scheduling.
func (w *Writer) Queue() *RetryQueue {
	return w.queue
}

// Persist writes the payload. On failure the full payload is appended to the
// retry queue and the call returns immediately with success=false; the write
// is never retried inline.
func (w *Writer) Persist(ctx context.Context, payload Payload) Result {
	if payload.QuestionId == uuid.Nil {
		payload.QuestionId = uuid.New()
	}
	round := ParseRoundId(payload.RoundId)

	if err := w.storage.SaveQuestion(ctx, payload, round); err != nil {
		w.logger.Warn("Persistence", "Write failed, deferring to retry queue", map[string]interface{}{
			"question_id": payload.QuestionId,
			"session_id":  round.SessionId,
			"round":       round.Round,
			"error":       err.Error(),
		})
		queued := true
		if qErr := w.queue.Enqueue(payload, err.Error()); qErr != nil {
			queued = false
			w.logger.Error("Persistence", "Retry queue rejected deferred write", map[string]interface{}{
				"question_id": payload.QuestionId,
				"error":       qErr.Error(),
			})
		}
		return Result{
			Success:        false,
			QueuedForRetry: queued,
			QuestionId:     payload.QuestionId,
			SessionId:      round.SessionId,
			Round:          round.Round,
		}
	}

	return Result{
		Success:    true,
		QuestionId: payload.QuestionId,
		SessionId:  round.SessionId,
		Round:      round.Round,
	}
}

// DrainOnce replays every queued entry through the storage backend.
// Partial failures leave the remaining entries queued.
func (w *Writer) DrainOnce(ctx context.Context) DrainResult {
	result := w.queue.Drain(ctx, func(ctx context.Context, entry RetryQueueEntry) error {
		round := ParseRoundId(entry.Payload.RoundId)
		return w.storage.SaveQuestion(ctx, entry.Payload, round)
	})

	if result.Replayed > 0 {
		w.logger.Info("Persistence", "Retry queue drained", map[string]interface{}{
			"replayed":  result.Replayed,
			"succeeded": result.Succeeded,
			"remaining": result.Remaining,
		})
	}
	return result
}
