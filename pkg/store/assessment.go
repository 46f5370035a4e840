package store

import (
	"time"

	"github.com/google/uuid"
)

// Question types supported by the platform.
const (
	TypeMultipleChoice = "multiple_choice"
	TypeTrueFalse      = "true_false"
	TypeShortAnswer    = "short_answer"
)

// Fixed category set.
const (
	CategoryTechnical  = "technical"
	CategoryConceptual = "conceptual"
	CategoryApplied    = "applied"
)

// Difficulty bounds (inclusive).
const (
	DifficultyMin = 1.0
	DifficultyMax = 10.0
)

// TemplateSearchWidening is applied on both sides of the requested difficulty
// when filtering prior items for few-shot examples.
const TemplateSearchWidening = 1.5

func ValidQuestionType(t string) bool {
	return t == TypeMultipleChoice || t == TypeTrueFalse || t == TypeShortAnswer
}

func ValidCategory(c string) bool {
	return c == CategoryTechnical || c == CategoryConceptual || c == CategoryApplied
}

// LearnerProfileSnapshot is an immutable view of a learner's self-assessment.
// Read-only input to drafting; never mutated by the loop.
type LearnerProfileSnapshot struct {
	LearnerId       uuid.UUID
	Level           string // "beginner", "intermediate", "advanced"
	YearsExperience int
	Role            string
	Interests       []string
	PreviousScore   *float64
}

// DefaultProfile is the fallback snapshot when lookup fails after retries.
func DefaultProfile(learnerId uuid.UUID) *LearnerProfileSnapshot {
	return &LearnerProfileSnapshot{
		LearnerId: learnerId,
		Level:     "beginner",
		Interests: []string{},
	}
}

// DraftItem is an LLM-proposed question before validation. It exists only
// transiently inside one loop iteration.
type DraftItem struct {
	Type            string   `json:"type"`
	Stem            string   `json:"stem"`
	Choices         []string `json:"choices,omitempty"`
	CorrectAnswer   string   `json:"correct_answer,omitempty"`
	CorrectKeywords []string `json:"correct_keywords,omitempty"`
	Difficulty      float64  `json:"difficulty"`
	Category        string   `json:"category"`
}

// Validation recommendations.
const (
	RecommendationPass   = "pass"
	RecommendationRevise = "revise"
	RecommendationReject = "reject"
)

// ValidationOutcome is the result of the two-stage validation gate.
// Combined score is always min(semantic, rule).
type ValidationOutcome struct {
	SemanticScore  float64  `json:"semantic_score"`
	RuleScore      float64  `json:"rule_score"`
	CombinedScore  float64  `json:"combined_score"`
	Recommendation string   `json:"recommendation"`
	Issues         []string `json:"issues,omitempty"`
}

// KeywordBundle is a cached bundle of difficulty- and category-scoped
// keywords, concepts and example items.
type KeywordBundle struct {
	Difficulty float64  `json:"difficulty"`
	Category   string   `json:"category"`
	Keywords   []string `json:"keywords"`
	Concepts   []string `json:"concepts"`
	Examples   []string `json:"examples"`
}

// TemplateItem is a prior persisted question surfaced as a few-shot example.
type TemplateItem struct {
	Id         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	Stem       string    `json:"stem"`
	Difficulty float64   `json:"difficulty"`
	Category   string    `json:"category"`
}

// ScoringAttempt is the result of grading a single answer. Immutable once created.
type ScoringAttempt struct {
	SessionId      string    `json:"session_id"`
	QuestionId     uuid.UUID `json:"question_id"`
	IsCorrect      bool      `json:"is_correct"`
	Score          float64   `json:"score"`
	Explanation    string    `json:"explanation"`
	KeywordMatches []string  `json:"keyword_matches,omitempty"`
	Feedback       string    `json:"feedback,omitempty"`
	GradedAt       time.Time `json:"graded_at"`
}
