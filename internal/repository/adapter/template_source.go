package adapter

import (
	"context"

	"adaptive-assessment-be/internal/repository/unitofwork"
	"adaptive-assessment-be/pkg/store"
)

// TemplateSourceAdapter surfaces prior persisted questions as few-shot
// templates via pgvector similarity search.
type TemplateSourceAdapter struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewTemplateSourceAdapter(uowFactory unitofwork.RepositoryFactory) *TemplateSourceAdapter {
	return &TemplateSourceAdapter{uowFactory: uowFactory}
}

func (a *TemplateSourceAdapter) SearchSimilar(ctx context.Context, vector []float32, minDifficulty, maxDifficulty float64, category string, limit int) ([]store.TemplateItem, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)

	questions, err := uow.QuestionEmbeddingRepository().SearchSimilarQuestions(ctx, vector, minDifficulty, maxDifficulty, category, limit)
	if err != nil {
		return nil, err
	}

	templates := make([]store.TemplateItem, len(questions))
	for i, q := range questions {
		templates[i] = store.TemplateItem{
			Id:         q.Id,
			Type:       q.Type,
			Stem:       q.Stem,
			Difficulty: q.Difficulty,
			Category:   q.Category,
		}
	}
	return templates, nil
}
