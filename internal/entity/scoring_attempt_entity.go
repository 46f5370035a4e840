package entity

import (
	"time"

	"github.com/google/uuid"
)

type ScoringAttempt struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId      string
	QuestionId     uuid.UUID `gorm:"type:uuid;index"`
	UserAnswer     string
	IsCorrect      bool
	Score          float64
	Explanation    string
	KeywordMatches []string
	Feedback       string
	ResponseTimeMs int64
	GradedAt       time.Time
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
