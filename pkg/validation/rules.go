package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"adaptive-assessment-be/pkg/store"
)

// Deterministic rule pass. Each violation subtracts a fixed penalty from an
// initial rule score of 1.0.
const (
	minStemLength = 10
	maxStemLength = 500

	penaltyStemLength       = 0.30
	penaltyChoiceCount      = 0.30
	penaltyAnswerMembership = 0.40
	penaltyDuplicateChoices = 0.30
	penaltyMissingAnswerKey = 0.40
)

// RuleCheck scores a draft against the deterministic item-quality rules.
// Returns the rule score in [0,1] and the detected issues.
func RuleCheck(item store.DraftItem) (float64, []string) {
	score := 1.0
	var issues []string

	stem := strings.TrimSpace(item.Stem)
	stemLen := utf8.RuneCountInString(stem)
	if stemLen < minStemLength || stemLen > maxStemLength {
		score -= penaltyStemLength
		issues = append(issues, fmt.Sprintf("stem length %d outside [%d, %d]", stemLen, minStemLength, maxStemLength))
	}

	switch item.Type {
	case store.TypeMultipleChoice:
		if len(item.Choices) < 4 || len(item.Choices) > 5 {
			score -= penaltyChoiceCount
			issues = append(issues, fmt.Sprintf("multiple-choice item has %d choices, want 4-5", len(item.Choices)))
		}
		if !answerInChoices(item.CorrectAnswer, item.Choices) {
			score -= penaltyAnswerMembership
			issues = append(issues, "correct answer is not one of the choices")
		}
		if dup := firstDuplicateChoice(item.Choices); dup != "" {
			score -= penaltyDuplicateChoices
			issues = append(issues, fmt.Sprintf("duplicate choice %q", dup))
		}

	case store.TypeTrueFalse:
		answer := strings.ToLower(strings.TrimSpace(item.CorrectAnswer))
		if answer != "true" && answer != "false" {
			score -= penaltyMissingAnswerKey
			issues = append(issues, "true/false item answer must be 'true' or 'false'")
		}

	case store.TypeShortAnswer:
		if len(item.CorrectKeywords) == 0 {
			score -= penaltyMissingAnswerKey
			issues = append(issues, "short-answer item has no correct keywords")
		}

	default:
		score = 0
		issues = append(issues, fmt.Sprintf("unsupported question type %q", item.Type))
	}

	if score < 0 {
		score = 0
	}
	return score, issues
}

func answerInChoices(answer string, choices []string) bool {
	target := strings.ToLower(strings.TrimSpace(answer))
	if target == "" {
		return false
	}
	for _, c := range choices {
		if strings.ToLower(strings.TrimSpace(c)) == target {
			return true
		}
	}
	return false
}

func firstDuplicateChoice(choices []string) string {
	seen := make(map[string]struct{}, len(choices))
	for _, c := range choices {
		key := strings.ToLower(strings.TrimSpace(c))
		if _, ok := seen[key]; ok {
			return c
		}
		seen[key] = struct{}{}
	}
	return ""
}
