package mapper

import (
	"encoding/json"
	"time"

	"adaptive-assessment-be/internal/entity"
	"adaptive-assessment-be/internal/model"
	"adaptive-assessment-be/pkg/store"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionMapper struct{}

func NewQuestionMapper() *QuestionMapper {
	return &QuestionMapper{}
}

func (m *QuestionMapper) ToEntity(q *model.Question) *entity.Question {
	if q == nil {
		return nil
	}

	var deletedAt *time.Time
	if q.DeletedAt.Valid {
		t := q.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !q.UpdatedAt.IsZero() {
		t := q.UpdatedAt
		updatedAt = &t
	}

	var choices []string
	if len(q.Choices) > 0 {
		_ = json.Unmarshal(q.Choices, &choices)
	}

	var schema store.AnswerSchema
	if len(q.AnswerSchema) > 0 {
		_ = json.Unmarshal(q.AnswerSchema, &schema)
	}

	return &entity.Question{
		Id:              q.Id,
		SessionId:       q.SessionId,
		Round:           q.Round,
		RoundId:         q.RoundId,
		Type:            q.Type,
		Stem:            q.Stem,
		Choices:         choices,
		AnswerSchema:    schema,
		Difficulty:      q.Difficulty,
		Category:        q.Category,
		ValidationScore: q.ValidationScore,
		Explanation:     q.Explanation,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
		IsDeleted:       q.DeletedAt.Valid,
	}
}

func (m *QuestionMapper) ToModel(q *entity.Question) *model.Question {
	if q == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if q.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *q.DeletedAt, Valid: true}
	} else if q.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if q.UpdatedAt != nil {
		updatedAt = *q.UpdatedAt
	}

	choicesJSON, _ := json.Marshal(q.Choices)
	schemaJSON, _ := json.Marshal(q.AnswerSchema)

	return &model.Question{
		Id:              q.Id,
		SessionId:       q.SessionId,
		Round:           q.Round,
		RoundId:         q.RoundId,
		Type:            q.Type,
		Stem:            q.Stem,
		Choices:         datatypes.JSON(choicesJSON),
		AnswerSchema:    datatypes.JSON(schemaJSON),
		Difficulty:      q.Difficulty,
		Category:        q.Category,
		ValidationScore: q.ValidationScore,
		Explanation:     q.Explanation,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
	}
}

func (m *QuestionMapper) ToEntities(questions []*model.Question) []*entity.Question {
	entities := make([]*entity.Question, len(questions))
	for i, q := range questions {
		entities[i] = m.ToEntity(q)
	}
	return entities
}
