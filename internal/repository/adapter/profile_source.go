package adapter

import (
	"context"
	"fmt"

	"adaptive-assessment-be/internal/repository/unitofwork"
	"adaptive-assessment-be/pkg/store"

	"github.com/google/uuid"
)

// ProfileSourceAdapter serves learner profile snapshots from the database.
// A missing profile is an error here; the profile tool owns the beginner
// default fallback.
type ProfileSourceAdapter struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewProfileSourceAdapter(uowFactory unitofwork.RepositoryFactory) *ProfileSourceAdapter {
	return &ProfileSourceAdapter{uowFactory: uowFactory}
}

func (a *ProfileSourceAdapter) FindSnapshot(ctx context.Context, learnerId uuid.UUID) (*store.LearnerProfileSnapshot, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.LearnerProfileRepository().FindByLearnerId(ctx, learnerId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("learner profile not found: %s", learnerId)
	}

	return &store.LearnerProfileSnapshot{
		LearnerId:       profile.LearnerId,
		Level:           profile.Level,
		YearsExperience: profile.YearsExperience,
		Role:            profile.Role,
		Interests:       profile.Interests,
		PreviousScore:   profile.PreviousScore,
	}, nil
}
