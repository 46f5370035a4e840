package grading

import "strings"

// MatchKeywords returns the expected keywords contained in the answer,
// matched by case-insensitive substring containment. Computed independently
// of the model score so grading stays auditable.
func MatchKeywords(answer string, expected []string) []string {
	normalized := strings.ToLower(answer)

	var matches []string
	for _, kw := range expected {
		trimmed := strings.TrimSpace(kw)
		if trimmed == "" {
			continue
		}
		if strings.Contains(normalized, strings.ToLower(trimmed)) {
			matches = append(matches, trimmed)
		}
	}
	return matches
}
