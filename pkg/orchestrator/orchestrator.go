package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"adaptive-assessment-be/internal/pkg/logger"
	"adaptive-assessment-be/pkg/agent"
	"adaptive-assessment-be/pkg/store"

	"github.com/cenkalti/backoff/v5"
)

// Retry policy for generation rounds. Only an empty item set is retryable;
// every other outcome surfaces immediately.
const (
	DefaultMaxAttempts     = 3
	DefaultInitialInterval = 1 * time.Second
)

// ErrEmptyGeneration marks a round that terminated cleanly but produced no
// items. It is the one error class the orchestrator retries.
var ErrEmptyGeneration = errors.New("generation produced no items")

// GenerationRunner is the loop surface the orchestrator drives.
type GenerationRunner interface {
	Generate(ctx context.Context, req agent.GenerateRequest) (*agent.GenerateOutcome, error)
}

// RoundResult is a successful generation round, including which attempt
// finally produced it.
type RoundResult struct {
	Items   []store.GeneratedItem
	Attempt int
	Outcome agent.Outcome
}

// Orchestrator retries empty generation rounds under exponential backoff.
type Orchestrator struct {
	runner          GenerationRunner
	logger          logger.ILogger
	maxAttempts     int
	initialInterval time.Duration
}

func NewOrchestrator(runner GenerationRunner, log logger.ILogger, maxAttempts int, initialInterval time.Duration) *Orchestrator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if initialInterval <= 0 {
		initialInterval = DefaultInitialInterval
	}
	return &Orchestrator{
		runner:          runner,
		logger:          log,
		maxAttempts:     maxAttempts,
		initialInterval: initialInterval,
	}
}

// GenerateRound runs the loop until it yields a non-empty item set or the
// attempt budget is spent. Malformed and iteration-capped terminations are
// never retried: a fresh attempt would replay the same conversation.
func (o *Orchestrator) GenerateRound(ctx context.Context, req agent.GenerateRequest) (*RoundResult, error) {
	attempt := 0

	operation := func() (*RoundResult, error) {
		attempt++

		outcome, err := o.runner.Generate(ctx, req)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		switch outcome.Termination {
		case agent.ReasonFinalAnswer:
			if len(outcome.Items) == 0 {
				o.logger.Warn("Orchestrator", "Generation round came back empty", map[string]interface{}{
					"session_id": req.SessionId,
					"round_id":   req.RoundId,
					"attempt":    attempt,
				})
				return nil, ErrEmptyGeneration
			}
			return &RoundResult{
				Items:   outcome.Items,
				Attempt: attempt,
				Outcome: outcome.Outcome,
			}, nil

		default:
			return nil, backoff.Permanent(fmt.Errorf(
				"generation terminated with %s: %s", outcome.Termination, outcome.Detail,
			))
		}
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = o.initialInterval
	policy.Multiplier = 2.0
	policy.RandomizationFactor = 0

	result, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(o.maxAttempts)),
	)
	if err != nil {
		if errors.Is(err, ErrEmptyGeneration) {
			return nil, fmt.Errorf("generation produced no items after %d attempts", attempt)
		}
		return nil, err
	}

	o.logger.Info("Orchestrator", "Generation round succeeded", map[string]interface{}{
		"session_id": req.SessionId,
		"round_id":   req.RoundId,
		"attempt":    result.Attempt,
		"items":      len(result.Items),
	})
	return result, nil
}
