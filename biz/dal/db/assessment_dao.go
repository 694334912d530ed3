package db

import (
	"context"
	"errors"

	"github.com/vivasst/risk_survey/biz/dal/model"
	"gorm.io/gorm"
)

// AssessmentDAO wraps persistence for qualitative assessments.
type AssessmentDAO struct{}

func NewAssessmentDAO() *AssessmentDAO { return &AssessmentDAO{} }

func (dao *AssessmentDAO) Create(ctx context.Context, db *gorm.DB, entity *model.Assessment) error {
	if entity == nil {
		return errors.New("assessment must not be nil")
	}
	return db.WithContext(ctx).Create(entity).Error
}

func (dao *AssessmentDAO) Save(ctx context.Context, db *gorm.DB, entity *model.Assessment) error {
	if entity == nil {
		return errors.New("assessment must not be nil")
	}
	return db.WithContext(ctx).Save(entity).Error
}

func (dao *AssessmentDAO) DeleteByHazard(ctx context.Context, db *gorm.DB, hazardID string) error {
	return db.WithContext(ctx).Where("hazard_id = ?", hazardID).Delete(&model.Assessment{}).Error
}

// GetByHazard fetches the one assessment linked to a hazard.
func (dao *AssessmentDAO) GetByHazard(ctx context.Context, db *gorm.DB, hazardID string) (*model.Assessment, error) {
	var entity model.Assessment
	if err := db.WithContext(ctx).Where("hazard_id = ?", hazardID).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (dao *AssessmentDAO) ListByEnvironment(ctx context.Context, db *gorm.DB, environmentID string) ([]model.Assessment, error) {
	var entities []model.Assessment
	err := db.WithContext(ctx).
		Where("environment_id = ?", environmentID).
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return entities, nil
}
