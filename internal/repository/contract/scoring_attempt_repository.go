package contract

import (
	"context"

	"adaptive-assessment-be/internal/entity"
	"adaptive-assessment-be/internal/repository/specification"
)

type ScoringAttemptRepository interface {
	Create(ctx context.Context, attempt *entity.ScoringAttempt) error
	CreateBulk(ctx context.Context, attempts []*entity.ScoringAttempt) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ScoringAttempt, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// AverageScoreBySession returns the mean score across a session's attempts,
	// or ok=false when the session has none.
	AverageScoreBySession(ctx context.Context, sessionId string) (float64, bool, error)
}
