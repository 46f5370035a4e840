package validation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"adaptive-assessment-be/pkg/llm"
	"adaptive-assessment-be/pkg/store"
)

// NeutralSemanticScore is the fallback when the model pass fails;
// combined with any rule score it lands in the "revise" band.
const NeutralSemanticScore = 0.5

// SemanticScorer asks the model to rate a draft item on a 0-1 scale.
// The model returns a single number only, keeping this step cheap and
// deterministic to parse.
type SemanticScorer struct {
	client *llm.Client
}

func NewSemanticScorer(client *llm.Client) *SemanticScorer {
	return &SemanticScorer{client: client}
}

// Score returns the model's 0-1 quality rating for the draft.
// Any model or parse failure degrades to NeutralSemanticScore.
func (s *SemanticScorer) Score(ctx context.Context, item store.DraftItem) (float64, error) {
	prompt := composeSemanticPrompt(item)

	response, err := s.client.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		return NeutralSemanticScore, fmt.Errorf("semantic scoring call failed: %w", err)
	}

	score, err := parseScore(response)
	if err != nil {
		return NeutralSemanticScore, fmt.Errorf("semantic score parse failed: %w", err)
	}
	return score, nil
}

func composeSemanticPrompt(item store.DraftItem) string {
	var prompt strings.Builder

	prompt.WriteString("You are a strict quality reviewer for test questions.\n\n")
	prompt.WriteString("Rate the following question on clarity, difficulty-appropriateness, ")
	prompt.WriteString("correctness, absence of bias, and format, combined into ONE score.\n\n")

	prompt.WriteString("<question>\n")
	prompt.WriteString(fmt.Sprintf("Type: %s\n", item.Type))
	prompt.WriteString(fmt.Sprintf("Category: %s\n", item.Category))
	prompt.WriteString(fmt.Sprintf("Target difficulty: %.1f of 10\n", item.Difficulty))
	prompt.WriteString(fmt.Sprintf("Stem: %s\n", item.Stem))
	for i, c := range item.Choices {
		prompt.WriteString(fmt.Sprintf("Choice %d: %s\n", i+1, c))
	}
	if item.CorrectAnswer != "" {
		prompt.WriteString(fmt.Sprintf("Proposed answer: %s\n", item.CorrectAnswer))
	}
	if len(item.CorrectKeywords) > 0 {
		prompt.WriteString(fmt.Sprintf("Expected keywords: %s\n", strings.Join(item.CorrectKeywords, ", ")))
	}
	prompt.WriteString("</question>\n\n")

	prompt.WriteString("Respond with ONLY a single decimal number between 0.0 and 1.0.\n")
	prompt.WriteString("No explanation, no JSON, no extra text.\n")

	return prompt.String()
}

// parseScore extracts the first parseable 0-1 number from the response.
func parseScore(response string) (float64, error) {
	for _, field := range strings.Fields(strings.TrimSpace(response)) {
		field = strings.Trim(field, ".,;:")
		if v, err := strconv.ParseFloat(field, 64); err == nil {
			if v < 0 {
				v = 0
			}
			if v > 1 {
				// Some models answer on a 0-100 scale despite instructions.
				if v <= 100 {
					v = v / 100
				} else {
					v = 1
				}
			}
			return v, nil
		}
	}
	return 0, fmt.Errorf("no numeric score in %q", truncate(response, 80))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
