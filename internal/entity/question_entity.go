package entity

import (
	"time"

	"adaptive-assessment-be/pkg/store"

	"github.com/google/uuid"
)

type Question struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId       string
	Round           int
	RoundId         string // raw composite identifier as persisted
	Type            string
	Stem            string
	Choices         []string
	AnswerSchema    store.AnswerSchema
	Difficulty      float64
	Category        string
	ValidationScore float64
	Explanation     string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	DeletedAt       *time.Time
	IsDeleted       bool
}
