package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"adaptive-assessment-be/internal/pkg/logger"
	"adaptive-assessment-be/pkg/store"
	"adaptive-assessment-be/pkg/validation"
)

const (
	validateToolName = "validate_items"
	validateTimeout  = 10 * time.Second
)

// ValidateTool runs drafts through the two-stage validation gate. Rejected
// drafts are revised up to the gate's regeneration bound before the outcome
// is surfaced. Outcomes are always per-item, also for mixed batches.
type ValidateTool struct {
	gate   *validation.Gate
	logger logger.ILogger
}

func NewValidateTool(gate *validation.Gate, log logger.ILogger) *ValidateTool {
	return &ValidateTool{
		gate:   gate,
		logger: log,
	}
}

type validateArgs struct {
	Items []store.DraftItem `json:"items"`
	Batch bool              `json:"batch,omitempty"`
}

type validatedItem struct {
	Item    store.DraftItem         `json:"item"`
	Outcome store.ValidationOutcome `json:"outcome"`
}

func (t *ValidateTool) Name() string { return validateToolName }

func (t *ValidateTool) Description() string {
	return "Validate one or more draft questions; returns per-item scores, recommendations and revised drafts."
}

func (t *ValidateTool) InputSchema() string {
	return `{"items": [{"type": "...", "stem": "...", "choices": [...], "correct_answer": "...", "correct_keywords": [...], "difficulty": 1-10, "category": "..."}], "batch": true}`
}

func (t *ValidateTool) Timeout() time.Duration { return validateTimeout }

func (t *ValidateTool) Validate(args json.RawMessage) error {
	var a validateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if len(a.Items) == 0 {
		return fmt.Errorf("no items to validate")
	}
	return nil
}

func (t *ValidateTool) Invoke(ctx context.Context, args json.RawMessage) (string, error) {
	var a validateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	results := make([]validatedItem, len(a.Items))
	for i, item := range a.Items {
		finalItem, outcome := t.gate.EvaluateWithRepair(ctx, item, validation.MaxRegenerationAttempts)
		results[i] = validatedItem{Item: finalItem, Outcome: outcome}
	}

	out, err := json.Marshal(map[string]interface{}{"results": results})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
