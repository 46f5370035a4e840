package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"adaptive-assessment-be/internal/pkg/logger"
	"adaptive-assessment-be/pkg/grading"
	"adaptive-assessment-be/pkg/store"

	"github.com/google/uuid"
)

const (
	scoreToolName = "score_answer"
	scoreTimeout  = 15 * time.Second
)

// ScoreTool grades one submitted answer. Grading failures degrade to a
// neutral attempt rather than an error observation, so the loop always gets
// a usable result back.
type ScoreTool struct {
	grader *grading.Grader
	logger logger.ILogger
}

func NewScoreTool(grader *grading.Grader, log logger.ILogger) *ScoreTool {
	return &ScoreTool{
		grader: grader,
		logger: log,
	}
}

type scoreArgs struct {
	SessionId       string   `json:"session_id"`
	QuestionId      string   `json:"question_id"`
	UserAnswer      string   `json:"user_answer"`
	QuestionType    string   `json:"question_type"`
	CorrectAnswer   string   `json:"correct_answer,omitempty"`
	CorrectKeywords []string `json:"correct_keywords,omitempty"`
}

func (t *ScoreTool) Name() string { return scoreToolName }

func (t *ScoreTool) Description() string {
	return "Grade a learner's answer against the stored answer schema. Returns score, correctness, explanation and keyword matches."
}

func (t *ScoreTool) InputSchema() string {
	return `{"session_id": "...", "question_id": "uuid", "user_answer": "...", "question_type": "multiple_choice|true_false|short_answer", "correct_answer": "...", "correct_keywords": ["..."]}`
}

func (t *ScoreTool) Timeout() time.Duration { return scoreTimeout }

func (t *ScoreTool) Validate(args json.RawMessage) error {
	var a scoreArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if !store.ValidQuestionType(a.QuestionType) {
		return fmt.Errorf("unsupported question type %q", a.QuestionType)
	}
	if a.UserAnswer == "" {
		return fmt.Errorf("user_answer is required")
	}
	return nil
}

func (t *ScoreTool) Invoke(ctx context.Context, args json.RawMessage) (string, error) {
	var a scoreArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	questionId, err := uuid.Parse(a.QuestionId)
	if err != nil {
		questionId = uuid.Nil
	}

	req := grading.Request{
		SessionId:       a.SessionId,
		QuestionId:      questionId,
		UserAnswer:      a.UserAnswer,
		QuestionType:    a.QuestionType,
		CorrectAnswer:   a.CorrectAnswer,
		CorrectKeywords: a.CorrectKeywords,
	}

	attempt, err := t.grader.Grade(ctx, req)
	if err != nil {
		t.logger.Warn("ScoreTool", "Grading degraded to neutral attempt", map[string]interface{}{
			"question_id": a.QuestionId,
			"error":       err.Error(),
		})
		attempt = t.grader.NeutralAttempt(req)
	}

	out, err := json.Marshal(attempt)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
