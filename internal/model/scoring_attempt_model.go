package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ScoringAttempt struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId      string         `gorm:"type:varchar(255);not null;index"`
	QuestionId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserAnswer     string         `gorm:"type:text"`
	IsCorrect      bool           `gorm:"not null;default:false"`
	Score          float64        `gorm:"not null;default:0"`
	Explanation    string         `gorm:"type:text"`
	KeywordMatches datatypes.JSON `gorm:"type:jsonb"`
	Feedback       string         `gorm:"type:text"`
	ResponseTimeMs int64          `gorm:"not null;default:0"`
	GradedAt       time.Time      `gorm:"not null"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (ScoringAttempt) TableName() string {
	return "scoring_attempts"
}
