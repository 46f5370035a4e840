package entity

import (
	"time"

	"github.com/google/uuid"
)

type LearnerProfile struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey"`
	LearnerId       uuid.UUID `gorm:"type:uuid;index"`
	Level           string
	YearsExperience int
	Role            string
	Interests       []string
	PreviousScore   *float64
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	DeletedAt       *time.Time
	IsDeleted       bool
}
