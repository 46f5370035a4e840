package grading

import (
	"context"

	"adaptive-assessment-be/pkg/store"

	"golang.org/x/sync/errgroup"
)

// BatchItem is one answer inside a batch grading request.
type BatchItem struct {
	Request
	ResponseTimeMs float64
}

// BatchResult aggregates a full round of graded answers.
type BatchResult struct {
	Attempts          []store.ScoringAttempt
	AverageScore      float64
	CorrectCount      int
	AverageResponseMs float64
}

// BatchScorer grades many answers concurrently. Each answer's grading is
// independent, so the pool runs them in parallel bounded by the expected
// model-call concurrency limit.
type BatchScorer struct {
	grader  *Grader
	workers int
}

func NewBatchScorer(grader *Grader, workers int) *BatchScorer {
	if workers <= 0 {
		workers = 4
	}
	return &BatchScorer{
		grader:  grader,
		workers: workers,
	}
}

// GradeAll grades every item and waits for all workers. Individual failures
// substitute a neutral-score attempt instead of failing the batch; result
// order matches input order.
func (b *BatchScorer) GradeAll(ctx context.Context, items []BatchItem) BatchResult {
	attempts := make([]store.ScoringAttempt, len(items))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(b.workers)

	for i, item := range items {
		group.Go(func() error {
			attempt, err := b.grader.Grade(groupCtx, item.Request)
			if err != nil {
				attempt = b.grader.NeutralAttempt(item.Request)
			}
			attempts[i] = attempt
			return nil
		})
	}
	_ = group.Wait() // workers never return errors

	result := BatchResult{Attempts: attempts}

	var scoreSum, timeSum float64
	for i, attempt := range attempts {
		scoreSum += attempt.Score
		timeSum += items[i].ResponseTimeMs
		if attempt.IsCorrect {
			result.CorrectCount++
		}
	}
	if len(attempts) > 0 {
		result.AverageScore = scoreSum / float64(len(attempts))
		result.AverageResponseMs = timeSum / float64(len(items))
	}

	return result
}
