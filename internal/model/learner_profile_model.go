package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LearnerProfile struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LearnerId       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Level           string         `gorm:"type:varchar(32);not null;default:'beginner'"`
	YearsExperience int            `gorm:"not null;default:0"`
	Role            string         `gorm:"type:varchar(128)"`
	Interests       datatypes.JSON `gorm:"type:jsonb"`
	PreviousScore   *float64
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (LearnerProfile) TableName() string {
	return "learner_profiles"
}
