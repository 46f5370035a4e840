package implementation

import (
	"context"

	"adaptive-assessment-be/internal/entity"
	"adaptive-assessment-be/internal/mapper"
	"adaptive-assessment-be/internal/model"
	"adaptive-assessment-be/internal/repository/contract"
	"adaptive-assessment-be/internal/repository/scope"
	"adaptive-assessment-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ScoringAttemptRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ScoringAttemptMapper
}

func NewScoringAttemptRepository(db *gorm.DB) contract.ScoringAttemptRepository {
	return &ScoringAttemptRepositoryImpl{
		db:     db,
		mapper: mapper.NewScoringAttemptMapper(),
	}
}

func (r *ScoringAttemptRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ScoringAttemptRepositoryImpl) Create(ctx context.Context, attempt *entity.ScoringAttempt) error {
	m := r.mapper.ToModel(attempt)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*attempt = *r.mapper.ToEntity(m)
	return nil
}

func (r *ScoringAttemptRepositoryImpl) CreateBulk(ctx context.Context, attempts []*entity.ScoringAttempt) error {
	if len(attempts) == 0 {
		return nil
	}
	models := make([]*model.ScoringAttempt, len(attempts))
	for i, a := range attempts {
		models[i] = r.mapper.ToModel(a)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*attempts[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *ScoringAttemptRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ScoringAttempt, error) {
	var models []*model.ScoringAttempt
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Scopes(scope.OrderByGradedDesc).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ScoringAttemptRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.ScoringAttempt{}).Count(&count).Error
	return count, err
}

func (r *ScoringAttemptRepositoryImpl) AverageScoreBySession(ctx context.Context, sessionId string) (float64, bool, error) {
	var result struct {
		Avg   float64
		Total int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.ScoringAttempt{}).
		Select("COALESCE(AVG(score), 0) as avg, COUNT(*) as total").
		Where("session_id = ?", sessionId).
		Scan(&result).Error
	if err != nil {
		return 0, false, err
	}
	return result.Avg, result.Total > 0, nil
}
