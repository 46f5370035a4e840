package adapter

import (
	"context"
	"time"

	"adaptive-assessment-be/internal/entity"
	"adaptive-assessment-be/internal/repository/unitofwork"
	"adaptive-assessment-be/pkg/persistence"
	"adaptive-assessment-be/pkg/store"
)

// QuestionStoreAdapter backs the persistence writer with the GORM question
// repository.
type QuestionStoreAdapter struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewQuestionStoreAdapter(uowFactory unitofwork.RepositoryFactory) *QuestionStoreAdapter {
	return &QuestionStoreAdapter{uowFactory: uowFactory}
}

func (a *QuestionStoreAdapter) SaveQuestion(ctx context.Context, payload persistence.Payload, round persistence.RoundId) error {
	uow := a.uowFactory.NewUnitOfWork(ctx)

	question := entity.Question{
		Id:        payload.QuestionId,
		SessionId: round.SessionId,
		Round:     round.Round,
		RoundId:   payload.RoundId,
		Type:      payload.Item.Type,
		Stem:      payload.Item.Stem,
		Choices:   payload.Item.Choices,
		AnswerSchema: store.AnswerSchema{
			Type:            payload.Item.Type,
			CorrectAnswer:   payload.Item.CorrectAnswer,
			CorrectKeywords: payload.Item.CorrectKeywords,
			ValidationScore: payload.ValidationScore,
			Explanation:     payload.Explanation,
		},
		Difficulty:      payload.Item.Difficulty,
		Category:        payload.Item.Category,
		ValidationScore: payload.ValidationScore,
		Explanation:     payload.Explanation,
		CreatedAt:       time.Now(),
	}

	return uow.QuestionRepository().Create(ctx, &question)
}
