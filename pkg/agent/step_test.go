package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStepToolCall(t *testing.T) {
	step, parseErr := ParseStep(`{"thought": "need the profile", "action": "lookup_profile", "action_input": {"learner_id": "abc"}}`)
	require.Nil(t, parseErr)

	call, ok := step.(ToolCall)
	require.True(t, ok)
	assert.Equal(t, "lookup_profile", call.Name)
	assert.Equal(t, "need the profile", call.Thought)
	assert.JSONEq(t, `{"learner_id": "abc"}`, string(call.Args))
}

func TestParseStepFinalAnswer(t *testing.T) {
	step, parseErr := ParseStep(`{"thought": "done", "final_answer": {"items": []}}`)
	require.Nil(t, parseErr)

	final, ok := step.(FinalAnswer)
	require.True(t, ok)
	assert.JSONEq(t, `{"items": []}`, string(final.Payload))
}

func TestParseStepBareThought(t *testing.T) {
	step, parseErr := ParseStep(`{"thought": "still considering"}`)
	require.Nil(t, parseErr)

	thought, ok := step.(Thought)
	require.True(t, ok)
	assert.Equal(t, "still considering", thought.Text)
}

func TestParseStepUnwrapsProseAndFences(t *testing.T) {
	response := "Sure, here is my step:\n```json\n" +
		`{"thought": "ok", "final_answer": {"score": 90}}` +
		"\n```\nLet me know."
	step, parseErr := ParseStep(response)
	require.Nil(t, parseErr)

	_, ok := step.(FinalAnswer)
	assert.True(t, ok)
}

func TestParseStepMalformed(t *testing.T) {
	cases := []struct {
		name     string
		response string
	}{
		{"empty response", "   "},
		{"invalid json", `{"thought": `},
		{"action and final answer together", `{"thought": "t", "action": "persist_item", "action_input": {}, "final_answer": {}}`},
		{"action without thought", `{"action": "persist_item", "action_input": {}}`},
		{"action without arguments", `{"thought": "t", "action": "persist_item"}`},
		{"null arguments", `{"thought": "t", "action": "persist_item", "action_input": null}`},
		{"nothing at all", `{}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			step, parseErr := ParseStep(tc.response)
			assert.Nil(t, step)
			require.NotNil(t, parseErr)
			assert.NotEmpty(t, parseErr.Reason)
		})
	}
}
