package dto

import (
	"time"

	"adaptive-assessment-be/pkg/store"

	"github.com/google/uuid"
)

type StartSessionRequest struct {
	LearnerId uuid.UUID `json:"learner_id" validate:"required"`
}

type StartSessionResponse struct {
	SessionId        string    `json:"session_id"`
	CurrentRound     int       `json:"current_round"`
	Difficulty       float64   `json:"difficulty"`
	TimeLimitSeconds int       `json:"time_limit_seconds"`
	StartedAt        time.Time `json:"started_at"`
}

type GenerateRoundRequest struct {
	LearnerId uuid.UUID `json:"learner_id" validate:"required"`
	ItemCount int       `json:"item_count" validate:"omitempty,min=1,max=20"`
}

type GenerateRoundResponse struct {
	SessionId        string                `json:"session_id"`
	RoundId          string                `json:"round_id"`
	Round            int                   `json:"round"`
	Attempt          int                   `json:"attempt"`
	Items            []store.GeneratedItem `json:"items"`
	TimeLimitSeconds int                   `json:"time_limit_seconds"`
}

type ScoreAnswerRequest struct {
	SessionId      string    `json:"session_id" validate:"required"`
	QuestionId     uuid.UUID `json:"question_id" validate:"required"`
	UserAnswer     string    `json:"user_answer" validate:"required"`
	ResponseTimeMs int64     `json:"response_time_ms" validate:"omitempty,min=0"`
}

type ScoreAnswerResponse struct {
	QuestionId     uuid.UUID `json:"question_id"`
	IsCorrect      bool      `json:"is_correct"`
	Score          float64   `json:"score"`
	Explanation    string    `json:"explanation"`
	KeywordMatches []string  `json:"keyword_matches,omitempty"`
	Feedback       string    `json:"feedback,omitempty"`
	GradedAt       time.Time `json:"graded_at"`
}

type BatchScoreRequest struct {
	SessionId string               `json:"session_id" validate:"required"`
	Answers   []ScoreAnswerRequest `json:"answers" validate:"required,min=1,dive"`
}

type BatchScoreSummary struct {
	AverageScore          float64 `json:"average_score"`
	CorrectCount          int     `json:"correct_count"`
	TotalCount            int     `json:"total_count"`
	AverageResponseTimeMs int64   `json:"average_response_time_ms"`
}

type BatchScoreResponse struct {
	SessionId string                `json:"session_id"`
	Results   []ScoreAnswerResponse `json:"results"`
	Summary   BatchScoreSummary     `json:"summary"`
}

type DrainQueueResponse struct {
	Replayed  int `json:"replayed"`
	Succeeded int `json:"succeeded"`
	Remaining int `json:"remaining"`
}

// PublishEmbedQuestionMessage is the async embedding pipeline payload.
type PublishEmbedQuestionMessage struct {
	QuestionId uuid.UUID `json:"question_id"`
}
