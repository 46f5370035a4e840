package orchestrator

import (
	"context"
	"fmt"
	"testing"
	"time"

	"adaptive-assessment-be/internal/pkg/logger"
	"adaptive-assessment-be/pkg/agent"
	"adaptive-assessment-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRunner returns one scripted outcome per attempt.
type scriptedRunner struct {
	t        *testing.T
	outcomes []*agent.GenerateOutcome
	errs     []error
	calls    int
}

func (r *scriptedRunner) Generate(_ context.Context, _ agent.GenerateRequest) (*agent.GenerateOutcome, error) {
	i := r.calls
	r.calls++
	require.Less(r.t, i, len(r.outcomes), "runner called more often than scripted")
	return r.outcomes[i], r.errs[i]
}

func newScriptedRunner(t *testing.T, steps ...scriptedStep) *scriptedRunner {
	r := &scriptedRunner{t: t}
	for _, s := range steps {
		r.outcomes = append(r.outcomes, s.outcome)
		r.errs = append(r.errs, s.err)
	}
	return r
}

type scriptedStep struct {
	outcome *agent.GenerateOutcome
	err     error
}

func finalAnswerOutcome(itemCount int) *agent.GenerateOutcome {
	items := make([]store.GeneratedItem, itemCount)
	return &agent.GenerateOutcome{
		Outcome: agent.Outcome{Termination: agent.ReasonFinalAnswer},
		Items:   items,
	}
}

func terminatedOutcome(reason agent.Reason, detail string) *agent.GenerateOutcome {
	return &agent.GenerateOutcome{
		Outcome: agent.Outcome{Termination: reason, Detail: detail},
	}
}

func newTestOrchestrator(runner GenerationRunner) *Orchestrator {
	return NewOrchestrator(runner, logger.NewNopLogger(), 3, time.Millisecond)
}

func TestGenerateRoundFirstAttemptSucceeds(t *testing.T) {
	runner := newScriptedRunner(t, scriptedStep{outcome: finalAnswerOutcome(3)})
	orchestrator := newTestOrchestrator(runner)

	result, err := orchestrator.GenerateRound(context.Background(), agent.GenerateRequest{SessionId: "sess-1"})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Attempt)
	assert.Len(t, result.Items, 3)
	assert.Equal(t, 1, runner.calls)
}

func TestGenerateRoundRetriesEmptyRounds(t *testing.T) {
	runner := newScriptedRunner(t,
		scriptedStep{outcome: finalAnswerOutcome(0)},
		scriptedStep{outcome: finalAnswerOutcome(0)},
		scriptedStep{outcome: finalAnswerOutcome(2)},
	)
	orchestrator := newTestOrchestrator(runner)

	result, err := orchestrator.GenerateRound(context.Background(), agent.GenerateRequest{SessionId: "sess-1"})

	require.NoError(t, err)
	assert.Equal(t, 3, result.Attempt)
	assert.Len(t, result.Items, 2)
}

func TestGenerateRoundExhaustsAttemptBudget(t *testing.T) {
	runner := newScriptedRunner(t,
		scriptedStep{outcome: finalAnswerOutcome(0)},
		scriptedStep{outcome: finalAnswerOutcome(0)},
		scriptedStep{outcome: finalAnswerOutcome(0)},
	)
	orchestrator := newTestOrchestrator(runner)

	_, err := orchestrator.GenerateRound(context.Background(), agent.GenerateRequest{SessionId: "sess-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no items after 3 attempts")
	assert.Equal(t, 3, runner.calls, "attempt budget is exactly three tries")
}

func TestGenerateRoundRunnerErrorIsPermanent(t *testing.T) {
	runner := newScriptedRunner(t, scriptedStep{err: fmt.Errorf("reasoning turn 1 failed")})
	orchestrator := newTestOrchestrator(runner)

	_, err := orchestrator.GenerateRound(context.Background(), agent.GenerateRequest{SessionId: "sess-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reasoning turn 1 failed")
	assert.Equal(t, 1, runner.calls, "loop errors must not be retried")
}

func TestGenerateRoundMalformedTerminationIsPermanent(t *testing.T) {
	runner := newScriptedRunner(t, scriptedStep{
		outcome: terminatedOutcome(agent.ReasonMalformedStep, "step carries no action"),
	})
	orchestrator := newTestOrchestrator(runner)

	_, err := orchestrator.GenerateRound(context.Background(), agent.GenerateRequest{SessionId: "sess-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), string(agent.ReasonMalformedStep))
	assert.Equal(t, 1, runner.calls)
}

func TestGenerateRoundIterationCapIsPermanent(t *testing.T) {
	runner := newScriptedRunner(t, scriptedStep{
		outcome: terminatedOutcome(agent.ReasonMaxIterations, "no final answer after 10 iterations"),
	})
	orchestrator := newTestOrchestrator(runner)

	_, err := orchestrator.GenerateRound(context.Background(), agent.GenerateRequest{SessionId: "sess-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), string(agent.ReasonMaxIterations))
	assert.Equal(t, 1, runner.calls)
}
