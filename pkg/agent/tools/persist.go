package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"adaptive-assessment-be/internal/pkg/logger"
	"adaptive-assessment-be/pkg/persistence"
	"adaptive-assessment-be/pkg/store"

	"github.com/google/uuid"
)

const (
	persistToolName = "persist_item"
	persistTimeout  = 10 * time.Second
)

// PersistListener is notified after a confirmed durable write. Used to kick
// off the async embedding pipeline.
type PersistListener interface {
	QuestionPersisted(ctx context.Context, questionId uuid.UUID)
}

// PersistTool writes a validated item through the retry-degrading writer.
// A storage failure is not an error here: the observation reports
// queued_for_retry and the loop moves on.
type PersistTool struct {
	writer   *persistence.Writer
	listener PersistListener
	logger   logger.ILogger
}

func NewPersistTool(writer *persistence.Writer, listener PersistListener, log logger.ILogger) *PersistTool {
	return &PersistTool{
		writer:   writer,
		listener: listener,
		logger:   log,
	}
}

type persistArgs struct {
	RoundId         string          `json:"round_id"`
	Item            store.DraftItem `json:"item"`
	ValidationScore float64         `json:"validation_score"`
	Explanation     string          `json:"explanation,omitempty"`
}

func (t *PersistTool) Name() string { return persistToolName }

func (t *PersistTool) Description() string {
	return "Persist a validated question under a round identifier. Only call after validate_items recommends pass or revise."
}

func (t *PersistTool) InputSchema() string {
	return `{"round_id": "{session_id}_{round_number}_{timestamp}", "item": {...}, "validation_score": 0.0-1.0, "explanation": "..."}`
}

func (t *PersistTool) Timeout() time.Duration { return persistTimeout }

func (t *PersistTool) Validate(args json.RawMessage) error {
	var a persistArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if a.RoundId == "" {
		return fmt.Errorf("round_id is required")
	}
	if !store.ValidQuestionType(a.Item.Type) {
		return fmt.Errorf("unsupported question type %q", a.Item.Type)
	}
	return nil
}

func (t *PersistTool) Invoke(ctx context.Context, args json.RawMessage) (string, error) {
	var a persistArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	result := t.writer.Persist(ctx, persistence.Payload{
		QuestionId:      uuid.New(),
		RoundId:         a.RoundId,
		Item:            a.Item,
		ValidationScore: a.ValidationScore,
		Explanation:     a.Explanation,
	})

	if result.Success && t.listener != nil {
		t.listener.QuestionPersisted(ctx, result.QuestionId)
	}

	out, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
