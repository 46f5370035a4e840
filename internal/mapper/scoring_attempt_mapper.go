package mapper

import (
	"encoding/json"
	"time"

	"adaptive-assessment-be/internal/entity"
	"adaptive-assessment-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ScoringAttemptMapper struct{}

func NewScoringAttemptMapper() *ScoringAttemptMapper {
	return &ScoringAttemptMapper{}
}

func (m *ScoringAttemptMapper) ToEntity(a *model.ScoringAttempt) *entity.ScoringAttempt {
	if a == nil {
		return nil
	}

	var deletedAt *time.Time
	if a.DeletedAt.Valid {
		t := a.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !a.UpdatedAt.IsZero() {
		t := a.UpdatedAt
		updatedAt = &t
	}

	var matches []string
	if len(a.KeywordMatches) > 0 {
		_ = json.Unmarshal(a.KeywordMatches, &matches)
	}

	return &entity.ScoringAttempt{
		Id:             a.Id,
		SessionId:      a.SessionId,
		QuestionId:     a.QuestionId,
		UserAnswer:     a.UserAnswer,
		IsCorrect:      a.IsCorrect,
		Score:          a.Score,
		Explanation:    a.Explanation,
		KeywordMatches: matches,
		Feedback:       a.Feedback,
		ResponseTimeMs: a.ResponseTimeMs,
		GradedAt:       a.GradedAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      a.DeletedAt.Valid,
	}
}

func (m *ScoringAttemptMapper) ToModel(a *entity.ScoringAttempt) *model.ScoringAttempt {
	if a == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if a.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *a.DeletedAt, Valid: true}
	} else if a.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if a.UpdatedAt != nil {
		updatedAt = *a.UpdatedAt
	}

	matchesJSON, _ := json.Marshal(a.KeywordMatches)

	return &model.ScoringAttempt{
		Id:             a.Id,
		SessionId:      a.SessionId,
		QuestionId:     a.QuestionId,
		UserAnswer:     a.UserAnswer,
		IsCorrect:      a.IsCorrect,
		Score:          a.Score,
		Explanation:    a.Explanation,
		KeywordMatches: datatypes.JSON(matchesJSON),
		Feedback:       a.Feedback,
		ResponseTimeMs: a.ResponseTimeMs,
		GradedAt:       a.GradedAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *ScoringAttemptMapper) ToEntities(attempts []*model.ScoringAttempt) []*entity.ScoringAttempt {
	entities := make([]*entity.ScoringAttempt, len(attempts))
	for i, a := range attempts {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
