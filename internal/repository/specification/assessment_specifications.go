package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

type BySessionId struct {
	SessionId string
}

func (s BySessionId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionId)
}

type ByRound struct {
	Round int
}

func (s ByRound) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("round = ?", s.Round)
}

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

type ByQuestionType struct {
	Type string
}

func (s ByQuestionType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}

// DifficultyBetween bounds the difficulty on both sides, inclusive.
type DifficultyBetween struct {
	Min float64
	Max float64
}

func (s DifficultyBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("difficulty BETWEEN ? AND ?", s.Min, s.Max)
}

type ByLearnerId struct {
	LearnerId uuid.UUID
}

func (s ByLearnerId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("learner_id = ?", s.LearnerId)
}

type ByQuestionId struct {
	QuestionId uuid.UUID
}

func (s ByQuestionId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("question_id = ?", s.QuestionId)
}
