package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"adaptive-assessment-be/pkg/llm"
	"adaptive-assessment-be/pkg/store"
)

// LLMReviser rewrites a rejected draft guided by the detected issues.
type LLMReviser struct {
	client *llm.Client
}

func NewLLMReviser(client *llm.Client) *LLMReviser {
	return &LLMReviser{client: client}
}

var _ Reviser = &LLMReviser{}

func (r *LLMReviser) Revise(ctx context.Context, item store.DraftItem, issues []string) (store.DraftItem, error) {
	prompt := composeRevisionPrompt(item, issues)

	response, err := r.client.Generate(ctx, prompt, llm.WithTemperature(0.4))
	if err != nil {
		return item, fmt.Errorf("revision call failed: %w", err)
	}

	var revised store.DraftItem
	if err := json.Unmarshal([]byte(extractJSON(response)), &revised); err != nil {
		return item, fmt.Errorf("revision parse failed: %w", err)
	}

	// The revision must stay in the same slot of the round.
	revised.Type = item.Type
	revised.Category = item.Category
	if revised.Difficulty == 0 {
		revised.Difficulty = item.Difficulty
	}
	return revised, nil
}

func composeRevisionPrompt(item store.DraftItem, issues []string) string {
	var prompt strings.Builder

	prompt.WriteString("You are revising a test question that failed quality validation.\n\n")

	original, _ := json.Marshal(item)
	prompt.WriteString("<original>\n")
	prompt.Write(original)
	prompt.WriteString("\n</original>\n\n")

	prompt.WriteString("<issues>\n")
	for _, issue := range issues {
		prompt.WriteString("- " + issue + "\n")
	}
	prompt.WriteString("</issues>\n\n")

	prompt.WriteString("Rewrite the question fixing every issue. Keep the same type, category and difficulty.\n")
	prompt.WriteString("Respond with ONLY the revised question as JSON with the same fields as the original.\n")

	return prompt.String()
}

// extractJSON isolates JSON content from a model response.
func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return response
	}

	return response[startIdx : endIdx+1]
}
