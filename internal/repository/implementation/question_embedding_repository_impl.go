package implementation

import (
	"context"
	"errors"

	"adaptive-assessment-be/internal/entity"
	"adaptive-assessment-be/internal/mapper"
	"adaptive-assessment-be/internal/model"
	"adaptive-assessment-be/internal/repository/contract"
	"adaptive-assessment-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type QuestionEmbeddingRepositoryImpl struct {
	db             *gorm.DB
	mapper         *mapper.QuestionEmbeddingMapper
	questionMapper *mapper.QuestionMapper
}

func NewQuestionEmbeddingRepository(db *gorm.DB) contract.QuestionEmbeddingRepository {
	return &QuestionEmbeddingRepositoryImpl{
		db:             db,
		mapper:         mapper.NewQuestionEmbeddingMapper(),
		questionMapper: mapper.NewQuestionMapper(),
	}
}

func (r *QuestionEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *QuestionEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.QuestionEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *QuestionEmbeddingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.QuestionEmbedding{}, id).Error
}

func (r *QuestionEmbeddingRepositoryImpl) DeleteByQuestionId(ctx context.Context, questionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("question_id = ?", questionId).Delete(&model.QuestionEmbedding{}).Error
}

func (r *QuestionEmbeddingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.QuestionEmbedding, error) {
	var m model.QuestionEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *QuestionEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.QuestionEmbedding{}).Count(&count).Error
	return count, err
}

// SearchSimilarQuestions orders by pgvector cosine distance over the embedding
// column, joined against questions for the difficulty band and category filters.
// Soft-deleted embeddings AND questions are excluded on both sides of the join.
func (r *QuestionEmbeddingRepositoryImpl) SearchSimilarQuestions(ctx context.Context, vector []float32, minDifficulty, maxDifficulty float64, category string, limit int) ([]*entity.Question, error) {
	if limit <= 0 {
		limit = 5
	}

	var models []*model.Question
	query := r.db.WithContext(ctx).
		Table("questions").
		Select("questions.*").
		Joins("JOIN question_embeddings ON question_embeddings.question_id = questions.id").
		Where("questions.difficulty BETWEEN ? AND ?", minDifficulty, maxDifficulty).
		Where("questions.deleted_at IS NULL").
		Where("question_embeddings.deleted_at IS NULL")

	if category != "" {
		query = query.Where("questions.category = ?", category)
	}

	err := query.
		Order(gorm.Expr("question_embeddings.embedding_value <=> ?", pgvector.NewVector(vector))).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	return r.questionMapper.ToEntities(models), nil
}
