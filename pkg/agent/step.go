package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Step is the discriminated union of things the model may emit in one
// reasoning turn. The parser yields exactly one variant or a ParseError,
// never a best-effort partial object.
type Step interface {
	isStep()
}

// Thought is a bare rationale with no action attached.
type Thought struct {
	Text string
}

// ToolCall names a tool together with its structured arguments.
type ToolCall struct {
	Thought string
	Name    string
	Args    json.RawMessage
}

// FinalAnswer carries the structured result ending the loop.
type FinalAnswer struct {
	Thought string
	Payload json.RawMessage
}

func (Thought) isStep()     {}
func (ToolCall) isStep()    {}
func (FinalAnswer) isStep() {}

// ParseError describes why a model emission is not a valid step.
type ParseError struct {
	Reason string
	Raw    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed reasoning step: %s", e.Reason)
}

// rawStep mirrors the wire format the model is instructed to produce.
type rawStep struct {
	Thought     string          `json:"thought"`
	Action      string          `json:"action,omitempty"`
	ActionInput json.RawMessage `json:"action_input,omitempty"`
	FinalAnswer json.RawMessage `json:"final_answer,omitempty"`
}

// ParseStep parses one model emission into a step variant. A step carrying a
// tool name is complete only when its arguments are a parseable JSON object;
// a tool name with no arguments is a ParseError, not a silent retry.
func ParseStep(response string) (Step, *ParseError) {
	jsonContent := extractJSON(response)
	if strings.TrimSpace(jsonContent) == "" {
		return nil, &ParseError{Reason: "empty response", Raw: response}
	}

	var raw rawStep
	if err := json.Unmarshal([]byte(jsonContent), &raw); err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("invalid JSON: %v", err), Raw: response}
	}

	hasAction := strings.TrimSpace(raw.Action) != ""
	hasFinal := len(raw.FinalAnswer) > 0 && !isJSONNull(raw.FinalAnswer)

	switch {
	case hasAction && hasFinal:
		return nil, &ParseError{Reason: "step contains both an action and a final answer", Raw: response}

	case hasAction:
		if strings.TrimSpace(raw.Thought) == "" {
			return nil, &ParseError{Reason: "tool call without a rationale", Raw: response}
		}
		if len(raw.ActionInput) == 0 || isJSONNull(raw.ActionInput) {
			return nil, &ParseError{Reason: fmt.Sprintf("tool %q called without arguments", raw.Action), Raw: response}
		}
		if !json.Valid(raw.ActionInput) {
			return nil, &ParseError{Reason: fmt.Sprintf("tool %q arguments are not valid JSON", raw.Action), Raw: response}
		}
		return ToolCall{
			Thought: raw.Thought,
			Name:    strings.TrimSpace(raw.Action),
			Args:    raw.ActionInput,
		}, nil

	case hasFinal:
		return FinalAnswer{
			Thought: raw.Thought,
			Payload: raw.FinalAnswer,
		}, nil

	case strings.TrimSpace(raw.Thought) != "":
		return Thought{Text: raw.Thought}, nil

	default:
		return nil, &ParseError{Reason: "step carries neither rationale, action nor final answer", Raw: response}
	}
}

func isJSONNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

// extractJSON isolates the JSON object from a model response that may wrap it
// in prose or code fences.
func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return response
	}

	return response[startIdx : endIdx+1]
}
