package agent

import (
	"fmt"
	"strings"

	"adaptive-assessment-be/pkg/agent/tools"
)

// PromptComposer renders the loop's system prompt and per-mode task prompts.
// The tool signatures are taken live from the registry so the prompt never
// drifts from the suite actually wired in.
type PromptComposer struct {
	registry *tools.Registry
}

func NewPromptComposer(registry *tools.Registry) *PromptComposer {
	return &PromptComposer{registry: registry}
}

// System renders the reasoning contract: one JSON object per turn, either a
// tool call or a final answer, never both.
func (p *PromptComposer) System(mode Mode) string {
	var prompt strings.Builder

	switch mode {
	case ModeScore:
		prompt.WriteString("You are a grading agent for an adaptive assessment platform. ")
		prompt.WriteString("You grade one learner answer by calling tools, then report the result.\n\n")
	default:
		prompt.WriteString("You are a question generation agent for an adaptive assessment platform. ")
		prompt.WriteString("You build personalized test questions by calling tools, validating drafts, and persisting the survivors.\n\n")
	}

	prompt.WriteString("<tools>\n")
	prompt.WriteString(p.registry.Describe())
	prompt.WriteString("</tools>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with EXACTLY ONE JSON object per turn. No prose outside the object.\n\n")
	prompt.WriteString("To call a tool:\n")
	prompt.WriteString(`{"thought": "why this tool, now", "action": "tool_name", "action_input": {...}}`)
	prompt.WriteString("\n\nTo finish:\n")
	prompt.WriteString(`{"thought": "summary of what was done", "final_answer": {...}}`)
	prompt.WriteString("\n\nRules:\n")
	prompt.WriteString("- Every tool call needs a thought and an action_input object.\n")
	prompt.WriteString("- Never emit an action and a final_answer in the same turn.\n")
	prompt.WriteString("- Tool results arrive as an Observation in the next turn.\n")
	prompt.WriteString("- If a tool reports an error, adapt and continue; do not repeat the identical call.\n")
	prompt.WriteString("</output_format>\n")

	return prompt.String()
}

// GenerateTask renders the task prompt for one generation round.
func (p *PromptComposer) GenerateTask(req GenerateRequest) string {
	var prompt strings.Builder

	prompt.WriteString("Generate a personalized question set for this round.\n\n")
	prompt.WriteString("<round>\n")
	prompt.WriteString(fmt.Sprintf("learner_id: %s\n", req.LearnerId))
	prompt.WriteString(fmt.Sprintf("session_id: %s\n", req.SessionId))
	prompt.WriteString(fmt.Sprintf("round_id: %s\n", req.RoundId))
	prompt.WriteString(fmt.Sprintf("item_count: %d\n", req.ItemCount))
	prompt.WriteString("</round>\n\n")

	prompt.WriteString("Work through these stages:\n")
	prompt.WriteString("1. lookup_profile to learn the learner's difficulty level and interests.\n")
	prompt.WriteString("2. search_templates and lookup_keywords to ground the questions in relevant material.\n")
	prompt.WriteString(fmt.Sprintf("3. Draft %d questions mixing multiple_choice, true_false and short_answer across the technical, conceptual and applied categories.\n", req.ItemCount))
	prompt.WriteString("4. validate_items on the drafts; drop anything the gate rejects.\n")
	prompt.WriteString("5. persist_item for each surviving question under the round_id above.\n\n")

	prompt.WriteString("Finish with a final_answer of the form:\n")
	prompt.WriteString(`{"items": [{"id": "...", "type": "...", "stem": "...", "choices": [...], "answer_schema": {...}, "difficulty": N, "category": "..."}]}`)
	prompt.WriteString("\nInclude ONLY items that were validated and persisted.\n")

	return prompt.String()
}

// ScoreTask renders the task prompt for grading one answer.
func (p *PromptComposer) ScoreTask(req ScoreRequest) string {
	var prompt strings.Builder

	prompt.WriteString("Grade this learner answer.\n\n")
	prompt.WriteString("<submission>\n")
	prompt.WriteString(fmt.Sprintf("session_id: %s\n", req.SessionId))
	prompt.WriteString(fmt.Sprintf("question_id: %s\n", req.QuestionId))
	prompt.WriteString(fmt.Sprintf("question_type: %s\n", req.QuestionType))
	prompt.WriteString(fmt.Sprintf("user_answer: %s\n", req.UserAnswer))
	if req.CorrectAnswer != "" {
		prompt.WriteString(fmt.Sprintf("correct_answer: %s\n", req.CorrectAnswer))
	}
	if len(req.CorrectKeywords) > 0 {
		prompt.WriteString(fmt.Sprintf("correct_keywords: %s\n", strings.Join(req.CorrectKeywords, ", ")))
	}
	prompt.WriteString("</submission>\n\n")

	prompt.WriteString("Call score_answer with the submission fields, then finish with a final_answer ")
	prompt.WriteString("containing the scoring result exactly as the tool returned it.\n")

	return prompt.String()
}
