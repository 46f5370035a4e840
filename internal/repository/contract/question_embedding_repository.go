package contract

import (
	"context"

	"adaptive-assessment-be/internal/entity"
	"adaptive-assessment-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredQuestionEmbedding wraps QuestionEmbedding with its similarity score.
type ScoredQuestionEmbedding struct {
	Embedding  *entity.QuestionEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type QuestionEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.QuestionEmbedding) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByQuestionId(ctx context.Context, questionId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.QuestionEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarQuestions joins questions and filters by difficulty band and
	// category; results are ordered by cosine distance to the query vector.
	SearchSimilarQuestions(ctx context.Context, vector []float32, minDifficulty, maxDifficulty float64, category string, limit int) ([]*entity.Question, error)
}
