package store

import (
	"time"

	"github.com/google/uuid"
)

// AssessmentSession tracks one learner's live assessment. Held in memory only;
// durable state lives with the persisted questions and scoring attempts.
type AssessmentSession struct {
	Id                string
	LearnerId         uuid.UUID
	CurrentRound      int
	CurrentDifficulty float64
	TimeLimitSeconds  int
	StartedAt         time.Time
}
