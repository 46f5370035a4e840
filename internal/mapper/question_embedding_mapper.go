package mapper

import (
	"time"

	"adaptive-assessment-be/internal/entity"
	"adaptive-assessment-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type QuestionEmbeddingMapper struct{}

func NewQuestionEmbeddingMapper() *QuestionEmbeddingMapper {
	return &QuestionEmbeddingMapper{}
}

func (m *QuestionEmbeddingMapper) ToEntity(e *model.QuestionEmbedding) *entity.QuestionEmbedding {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.QuestionEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		QuestionId:     e.QuestionId,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      e.DeletedAt.Valid,
	}
}

func (m *QuestionEmbeddingMapper) ToModel(e *entity.QuestionEmbedding) *model.QuestionEmbedding {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.QuestionEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		QuestionId:     e.QuestionId,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}
