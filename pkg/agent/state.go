package agent

import (
	"encoding/json"
)

// Mode selects how the loop's final answer is interpreted.
type Mode string

const (
	ModeGenerate Mode = "generate"
	ModeScore    Mode = "score"
)

// Reason is the loop's terminal state. Exactly one per invocation.
type Reason string

const (
	ReasonFinalAnswer   Reason = "FINAL_ANSWER"
	ReasonMaxIterations Reason = "MAX_ITER_REACHED"
	ReasonMalformedStep Reason = "MALFORMED_STEP"
)

// StepRecord is one completed think/act/observe cycle.
type StepRecord struct {
	Thought     string          `json:"thought"`
	Action      string          `json:"action,omitempty"`
	ActionInput json.RawMessage `json:"action_input,omitempty"`
	Observation string          `json:"observation,omitempty"`
}

// LoopState is the working memory of one loop invocation. It is owned
// exclusively by that invocation and frozen once a terminal state is set.
type LoopState struct {
	Steps       []StepRecord
	Iterations  int
	Termination Reason
	Detail      string // human-readable cause for malformed terminations

	sealed bool
}

func (s *LoopState) record(step StepRecord) {
	if s.sealed {
		return
	}
	s.Steps = append(s.Steps, step)
}

// terminate seals the state with the given reason. The first terminal state
// wins; later calls are ignored, so an invocation can never report two.
func (s *LoopState) terminate(reason Reason, detail string) {
	if s.sealed {
		return
	}
	s.Termination = reason
	s.Detail = detail
	s.sealed = true
}

// Terminated reports whether a terminal state has been reached.
func (s *LoopState) Terminated() bool {
	return s.sealed
}
