package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"adaptive-assessment-be/internal/pkg/logger"
	"adaptive-assessment-be/pkg/agent/tools"
	"adaptive-assessment-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProvider replays canned responses in order.
type scriptedProvider struct {
	responses []string
	calls     int
}

func (p *scriptedProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	if p.calls >= len(p.responses) {
		return "", fmt.Errorf("no scripted response for call %d", p.calls+1)
	}
	resp := p.responses[p.calls]
	p.calls++
	return resp, nil
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

// echoTool records its invocations and returns a fixed observation.
type echoTool struct {
	invocations int
	lastArgs    string
}

func (t *echoTool) Name() string                     { return "echo" }
func (t *echoTool) Description() string              { return "echoes arguments back" }
func (t *echoTool) InputSchema() string              { return `{"value": "..."}` }
func (t *echoTool) Timeout() time.Duration           { return time.Second }
func (t *echoTool) Validate(_ json.RawMessage) error { return nil }
func (t *echoTool) Invoke(_ context.Context, args json.RawMessage) (string, error) {
	t.invocations++
	t.lastArgs = string(args)
	return `{"echoed": true}`, nil
}

func newTestLoop(provider llm.LLMProvider, tool tools.Tool, maxIterations int) *Loop {
	log := logger.NewNopLogger()
	registry := tools.NewRegistry(log)
	if tool != nil {
		registry.Register(tool)
	}
	client := llm.NewClient(provider, llm.CallPolicy{Timeout: time.Second})
	return NewLoop(client, registry, log, maxIterations)
}

func TestLoopFinalAnswerTermination(t *testing.T) {
	tool := &echoTool{}
	provider := &scriptedProvider{responses: []string{
		`{"thought": "inspect first", "action": "echo", "action_input": {"value": "hi"}}`,
		`{"thought": "done", "final_answer": {"items": [{"type": "true_false", "stem": "Gravity pulls objects together.", "difficulty": 3, "category": "conceptual"}]}}`,
	}}

	loop := newTestLoop(provider, tool, 10)
	outcome, err := loop.Run(context.Background(), ModeGenerate, "task")
	require.NoError(t, err)

	assert.Equal(t, ReasonFinalAnswer, outcome.Termination)
	assert.Equal(t, 2, outcome.Iterations)
	assert.Equal(t, 1, tool.invocations)
	assert.JSONEq(t, `{"value": "hi"}`, tool.lastArgs)
	assert.Contains(t, string(outcome.FinalPayload), "Gravity")
}

func TestLoopMalformedStepTermination(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`this is not a step at all`,
	}}

	loop := newTestLoop(provider, &echoTool{}, 10)
	outcome, err := loop.Run(context.Background(), ModeGenerate, "task")
	require.NoError(t, err)

	assert.Equal(t, ReasonMalformedStep, outcome.Termination)
	assert.NotEmpty(t, outcome.Detail)
	assert.Equal(t, 1, outcome.Iterations)
}

func TestLoopBareThoughtIsMalformed(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"thought": "just musing"}`,
	}}

	loop := newTestLoop(provider, &echoTool{}, 10)
	outcome, err := loop.Run(context.Background(), ModeGenerate, "task")
	require.NoError(t, err)

	assert.Equal(t, ReasonMalformedStep, outcome.Termination)
}

func TestLoopMaxIterations(t *testing.T) {
	// The model loops on tool calls and never finishes.
	responses := make([]string, 10)
	for i := range responses {
		responses[i] = `{"thought": "more data", "action": "echo", "action_input": {"value": "again"}}`
	}
	tool := &echoTool{}

	loop := newTestLoop(&scriptedProvider{responses: responses}, tool, 10)
	outcome, err := loop.Run(context.Background(), ModeGenerate, "task")
	require.NoError(t, err)

	assert.Equal(t, ReasonMaxIterations, outcome.Termination)
	assert.Equal(t, 10, outcome.Iterations)
	assert.Equal(t, 10, tool.invocations)
}

func TestLoopUnknownToolBecomesObservation(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"thought": "try something", "action": "nonexistent", "action_input": {}}`,
		`{"thought": "give up cleanly", "final_answer": {"items": []}}`,
	}}

	loop := newTestLoop(provider, &echoTool{}, 10)
	outcome, err := loop.Run(context.Background(), ModeGenerate, "task")
	require.NoError(t, err)

	assert.Equal(t, ReasonFinalAnswer, outcome.Termination)
	require.Len(t, outcome.Steps, 2)
	assert.Contains(t, outcome.Steps[0].Observation, "unknown tool")
}

func TestLoopGenerateParsesItems(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"thought": "done", "final_answer": {"items": [{"type": "multiple_choice", "stem": "Which layer routes packets?", "choices": ["network", "transport", "session", "physical"], "difficulty": 4, "category": "technical"}]}}`,
	}}

	loop := newTestLoop(provider, &echoTool{}, 10)
	outcome, err := loop.Generate(context.Background(), GenerateRequest{
		LearnerId: "learner-1",
		SessionId: "sess-1",
		RoundId:   "sess-1_1_2026-01-01T00:00:00Z",
		ItemCount: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, ReasonFinalAnswer, outcome.Termination)
	require.Len(t, outcome.Items, 1)
	assert.Equal(t, "multiple_choice", outcome.Items[0].Type)
}

func TestLoopGenerateUnparseableFinalPayloadIsMalformed(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"thought": "done", "final_answer": {"items": "not an item list"}}`,
	}}

	loop := newTestLoop(provider, &echoTool{}, 10)
	outcome, err := loop.Generate(context.Background(), GenerateRequest{
		LearnerId: "learner-1",
		SessionId: "sess-1",
		RoundId:   "sess-1_1_2026-01-01T00:00:00Z",
		ItemCount: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, ReasonMalformedStep, outcome.Termination)
	assert.Contains(t, outcome.Detail, "not an item set")
	assert.Empty(t, outcome.Items)
}

func TestLoopScoreUnparseableFinalPayloadIsMalformed(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"thought": "done", "final_answer": [1, 2, 3]}`,
	}}

	loop := newTestLoop(provider, &echoTool{}, 10)
	outcome, err := loop.Score(context.Background(), ScoreRequest{
		SessionId:    "sess-1",
		QuestionId:   "q-1",
		UserAnswer:   "true",
		QuestionType: "true_false",
	})
	require.NoError(t, err)

	assert.Equal(t, ReasonMalformedStep, outcome.Termination)
	assert.Contains(t, outcome.Detail, "not a scoring attempt")
}

func TestLoopStateSealedAfterTermination(t *testing.T) {
	state := &LoopState{}
	state.terminate(ReasonFinalAnswer, "")
	state.terminate(ReasonMaxIterations, "second write must be ignored")
	state.record(StepRecord{Thought: "late"})

	assert.Equal(t, ReasonFinalAnswer, state.Termination)
	assert.Empty(t, state.Detail)
	assert.Empty(t, state.Steps)
	assert.True(t, state.Terminated())
}
