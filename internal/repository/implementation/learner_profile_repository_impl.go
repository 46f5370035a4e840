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
	"gorm.io/gorm"
)

type LearnerProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LearnerProfileMapper
}

func NewLearnerProfileRepository(db *gorm.DB) contract.LearnerProfileRepository {
	return &LearnerProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewLearnerProfileMapper(),
	}
}

func (r *LearnerProfileRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LearnerProfileRepositoryImpl) Create(ctx context.Context, profile *entity.LearnerProfile) error {
	m := r.mapper.ToModel(profile)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*profile = *r.mapper.ToEntity(m)
	return nil
}

func (r *LearnerProfileRepositoryImpl) Update(ctx context.Context, profile *entity.LearnerProfile) error {
	m := r.mapper.ToModel(profile)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*profile = *r.mapper.ToEntity(m)
	return nil
}

func (r *LearnerProfileRepositoryImpl) FindByLearnerId(ctx context.Context, learnerId uuid.UUID) (*entity.LearnerProfile, error) {
	return r.FindOne(ctx, specification.ByLearnerId{LearnerId: learnerId})
}

func (r *LearnerProfileRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LearnerProfile, error) {
	var m model.LearnerProfile
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
