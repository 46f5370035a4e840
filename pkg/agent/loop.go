package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"adaptive-assessment-be/internal/pkg/logger"
	"adaptive-assessment-be/pkg/agent/tools"
	"adaptive-assessment-be/pkg/llm"
	"adaptive-assessment-be/pkg/store"
)

// DefaultMaxIterations bounds one loop invocation. Every run terminates: by a
// final answer, by a malformed step, or by hitting this ceiling.
const DefaultMaxIterations = 10

// GenerateRequest describes one question generation round.
type GenerateRequest struct {
	LearnerId string
	SessionId string
	RoundId   string
	ItemCount int
}

// ScoreRequest describes one answer to grade through the loop.
type ScoreRequest struct {
	SessionId       string
	QuestionId      string
	UserAnswer      string
	QuestionType    string
	CorrectAnswer   string
	CorrectKeywords []string
}

// Outcome is the frozen result of one loop invocation.
type Outcome struct {
	Termination  Reason
	Detail       string
	Iterations   int
	Steps        []StepRecord
	FinalPayload json.RawMessage
}

// GenerateOutcome pairs the loop outcome with the parsed item set.
type GenerateOutcome struct {
	Outcome
	Items []store.GeneratedItem
}

// ScoreOutcome pairs the loop outcome with the parsed scoring attempt.
type ScoreOutcome struct {
	Outcome
	Attempt store.ScoringAttempt
}

// Loop drives the think/act/observe cycle against the tool registry. One Loop
// is safe for concurrent use; each invocation owns its own state.
type Loop struct {
	client        *llm.Client
	registry      *tools.Registry
	composer      *PromptComposer
	logger        logger.ILogger
	maxIterations int
}

func NewLoop(client *llm.Client, registry *tools.Registry, log logger.ILogger, maxIterations int) *Loop {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &Loop{
		client:        client,
		registry:      registry,
		composer:      NewPromptComposer(registry),
		logger:        log,
		maxIterations: maxIterations,
	}
}

// Generate runs one generation round and parses the final item set. An empty
// item set is a valid outcome here; retry policy lives with the caller.
func (l *Loop) Generate(ctx context.Context, req GenerateRequest) (*GenerateOutcome, error) {
	outcome, err := l.Run(ctx, ModeGenerate, l.composer.GenerateTask(req))
	if err != nil {
		return nil, err
	}

	result := &GenerateOutcome{Outcome: *outcome}
	if outcome.Termination != ReasonFinalAnswer {
		return result, nil
	}

	var payload struct {
		Items []store.GeneratedItem `json:"items"`
	}
	if err := json.Unmarshal(outcome.FinalPayload, &payload); err != nil {
		result.Termination = ReasonMalformedStep
		result.Detail = fmt.Sprintf("final answer is not an item set: %v", err)
		return result, nil
	}
	result.Items = payload.Items
	return result, nil
}

// Score runs one grading invocation and parses the final scoring attempt.
func (l *Loop) Score(ctx context.Context, req ScoreRequest) (*ScoreOutcome, error) {
	outcome, err := l.Run(ctx, ModeScore, l.composer.ScoreTask(req))
	if err != nil {
		return nil, err
	}

	result := &ScoreOutcome{Outcome: *outcome}
	if outcome.Termination != ReasonFinalAnswer {
		return result, nil
	}

	if err := json.Unmarshal(outcome.FinalPayload, &result.Attempt); err != nil {
		result.Termination = ReasonMalformedStep
		result.Detail = fmt.Sprintf("final answer is not a scoring attempt: %v", err)
		return result, nil
	}
	return result, nil
}

// Run executes the loop until a terminal state. Model transport failures are
// the only hard errors; everything the model says, however malformed, maps to
// a terminal state instead.
func (l *Loop) Run(ctx context.Context, mode Mode, task string) (*Outcome, error) {
	state := &LoopState{}
	history := []llm.Message{
		{Role: "system", Content: l.composer.System(mode)},
		{Role: "user", Content: task},
	}

	var finalPayload json.RawMessage

	for !state.Terminated() && state.Iterations < l.maxIterations {
		state.Iterations++

		response, err := l.client.Chat(ctx, history, llm.WithTemperature(0.2))
		if err != nil {
			return nil, fmt.Errorf("reasoning turn %d failed: %w", state.Iterations, err)
		}

		step, parseErr := ParseStep(response)
		if parseErr != nil {
			l.logger.Warn("AgentLoop", "Malformed reasoning step", map[string]interface{}{
				"mode":      string(mode),
				"iteration": state.Iterations,
				"reason":    parseErr.Reason,
			})
			state.terminate(ReasonMalformedStep, parseErr.Reason)
			break
		}

		switch s := step.(type) {
		case ToolCall:
			observation := l.registry.Dispatch(ctx, s.Name, s.Args)
			state.record(StepRecord{
				Thought:     s.Thought,
				Action:      s.Name,
				ActionInput: s.Args,
				Observation: observation,
			})
			history = append(history,
				llm.Message{Role: "assistant", Content: response},
				llm.Message{Role: "user", Content: "Observation: " + observation},
			)

		case FinalAnswer:
			state.record(StepRecord{Thought: s.Thought})
			finalPayload = s.Payload
			state.terminate(ReasonFinalAnswer, "")

		case Thought:
			// A rationale with no action and no final answer leaves the loop
			// with nothing to execute and nothing to return.
			state.terminate(ReasonMalformedStep, "step carries a rationale but no action or final answer")
		}
	}

	if !state.Terminated() {
		state.terminate(ReasonMaxIterations, fmt.Sprintf("no final answer after %d iterations", l.maxIterations))
	}

	l.logger.Info("AgentLoop", "Loop terminated", map[string]interface{}{
		"mode":        string(mode),
		"termination": string(state.Termination),
		"iterations":  state.Iterations,
	})

	return &Outcome{
		Termination:  state.Termination,
		Detail:       state.Detail,
		Iterations:   state.Iterations,
		Steps:        state.Steps,
		FinalPayload: finalPayload,
	}, nil
}
