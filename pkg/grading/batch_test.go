package grading

import (
	"context"
	"fmt"
	"testing"
	"time"

	"adaptive-assessment-be/internal/pkg/logger"
	"adaptive-assessment-be/pkg/llm"
	"adaptive-assessment-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// offlineProvider fails every call; safe for concurrent use.
type offlineProvider struct{}

func (offlineProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return "", fmt.Errorf("model unavailable")
}

func (p offlineProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, nil, options...)
}

func newOfflineBatchScorer(workers int) *BatchScorer {
	client := llm.NewClient(offlineProvider{}, llm.CallPolicy{Timeout: time.Second})
	return NewBatchScorer(NewGrader(client, logger.NewNopLogger()), workers)
}

func exactItem(questionType, userAnswer, correctAnswer string, responseMs float64) BatchItem {
	return BatchItem{
		Request: Request{
			SessionId:     "sess-1",
			QuestionId:    uuid.New(),
			UserAnswer:    userAnswer,
			QuestionType:  questionType,
			CorrectAnswer: correctAnswer,
		},
		ResponseTimeMs: responseMs,
	}
}

func TestGradeAllPreservesOrder(t *testing.T) {
	scorer := newOfflineBatchScorer(2)

	items := []BatchItem{
		exactItem(store.TypeTrueFalse, "true", "true", 1000),
		exactItem(store.TypeMultipleChoice, "Hash map", "Linked list", 2000),
		exactItem(store.TypeTrueFalse, "false", "false", 3000),
	}

	result := scorer.GradeAll(context.Background(), items)

	require.Len(t, result.Attempts, 3)
	for i, attempt := range result.Attempts {
		assert.Equal(t, items[i].QuestionId, attempt.QuestionId, "attempt %d out of order", i)
	}
	assert.True(t, result.Attempts[0].IsCorrect)
	assert.False(t, result.Attempts[1].IsCorrect)
	assert.True(t, result.Attempts[2].IsCorrect)
}

func TestGradeAllAggregates(t *testing.T) {
	scorer := newOfflineBatchScorer(4)

	items := []BatchItem{
		exactItem(store.TypeTrueFalse, "true", "true", 1000),
		exactItem(store.TypeMultipleChoice, "Hash map", "Linked list", 3000),
	}

	result := scorer.GradeAll(context.Background(), items)

	assert.Equal(t, 1, result.CorrectCount)
	assert.Equal(t, 50.0, result.AverageScore)
	assert.Equal(t, 2000.0, result.AverageResponseMs)
}

func TestGradeAllSubstitutesNeutralOnFailure(t *testing.T) {
	scorer := newOfflineBatchScorer(2)

	items := []BatchItem{
		exactItem(store.TypeTrueFalse, "true", "true", 1000),
		exactItem("essay", "long text", "", 2000),
	}

	result := scorer.GradeAll(context.Background(), items)

	require.Len(t, result.Attempts, 2)
	neutral := result.Attempts[1]
	assert.Equal(t, NeutralScore, neutral.Score)
	assert.False(t, neutral.IsCorrect)
	assert.Equal(t, items[1].QuestionId, neutral.QuestionId)
}

func TestGradeAllEmptyBatch(t *testing.T) {
	scorer := newOfflineBatchScorer(2)

	result := scorer.GradeAll(context.Background(), nil)

	assert.Empty(t, result.Attempts)
	assert.Zero(t, result.AverageScore)
	assert.Zero(t, result.CorrectCount)
}
