package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Question struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId       string         `gorm:"type:varchar(255);not null;index"`
	Round           int            `gorm:"not null;default:1"`
	RoundId         string         `gorm:"type:varchar(512);not null;index"`
	Type            string         `gorm:"type:varchar(32);not null"`
	Stem            string         `gorm:"type:text;not null"`
	Choices         datatypes.JSON `gorm:"type:jsonb"`
	AnswerSchema    datatypes.JSON `gorm:"type:jsonb;not null"`
	Difficulty      float64        `gorm:"not null"`
	Category        string         `gorm:"type:varchar(32);not null;index"`
	ValidationScore float64        `gorm:"not null;default:0"`
	Explanation     string         `gorm:"type:text"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Question) TableName() string {
	return "questions"
}
