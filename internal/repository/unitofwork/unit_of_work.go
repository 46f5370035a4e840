package unitofwork

import (
	"context"

	"adaptive-assessment-be/internal/repository/contract"
)

// RepositoryFactory hands out request-scoped units of work.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	QuestionRepository() contract.QuestionRepository
	QuestionEmbeddingRepository() contract.QuestionEmbeddingRepository
	LearnerProfileRepository() contract.LearnerProfileRepository
	ScoringAttemptRepository() contract.ScoringAttemptRepository
}
