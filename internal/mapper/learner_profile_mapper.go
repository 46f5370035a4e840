package mapper

import (
	"encoding/json"
	"time"

	"adaptive-assessment-be/internal/entity"
	"adaptive-assessment-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LearnerProfileMapper struct{}

func NewLearnerProfileMapper() *LearnerProfileMapper {
	return &LearnerProfileMapper{}
}

func (m *LearnerProfileMapper) ToEntity(p *model.LearnerProfile) *entity.LearnerProfile {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	var interests []string
	if len(p.Interests) > 0 {
		_ = json.Unmarshal(p.Interests, &interests)
	}

	return &entity.LearnerProfile{
		Id:              p.Id,
		LearnerId:       p.LearnerId,
		Level:           p.Level,
		YearsExperience: p.YearsExperience,
		Role:            p.Role,
		Interests:       interests,
		PreviousScore:   p.PreviousScore,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
		IsDeleted:       p.DeletedAt.Valid,
	}
}

func (m *LearnerProfileMapper) ToModel(p *entity.LearnerProfile) *model.LearnerProfile {
	if p == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	} else if p.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	interestsJSON, _ := json.Marshal(p.Interests)

	return &model.LearnerProfile{
		Id:              p.Id,
		LearnerId:       p.LearnerId,
		Level:           p.Level,
		YearsExperience: p.YearsExperience,
		Role:            p.Role,
		Interests:       datatypes.JSON(interestsJSON),
		PreviousScore:   p.PreviousScore,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
	}
}
