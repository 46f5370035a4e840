package store

import "github.com/google/uuid"

// AnswerSchema is the type-specific grading contract persisted with every
// question: an exact-match key for MC/TF, a keyword list for short answers,
// plus validation audit metadata.
type AnswerSchema struct {
	Type            string   `json:"type"`
	CorrectAnswer   string   `json:"correct_answer,omitempty"`
	CorrectKeywords []string `json:"correct_keywords,omitempty"`
	ValidationScore float64  `json:"validation_score,omitempty"`
	Explanation     string   `json:"explanation,omitempty"`
}

// GeneratedItem is the externally visible shape of a persisted question as
// returned by the generate operation.
type GeneratedItem struct {
	Id           uuid.UUID    `json:"id"`
	Type         string       `json:"type"`
	Stem         string       `json:"stem"`
	Choices      []string     `json:"choices,omitempty"`
	AnswerSchema AnswerSchema `json:"answer_schema"`
	Difficulty   float64      `json:"difficulty"`
	Category     string       `json:"category"`
}
