package contract

import (
	"context"

	"adaptive-assessment-be/internal/entity"
	"adaptive-assessment-be/internal/repository/specification"

	"github.com/google/uuid"
)

type LearnerProfileRepository interface {
	Create(ctx context.Context, profile *entity.LearnerProfile) error
	Update(ctx context.Context, profile *entity.LearnerProfile) error
	FindByLearnerId(ctx context.Context, learnerId uuid.UUID) (*entity.LearnerProfile, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LearnerProfile, error)
}
