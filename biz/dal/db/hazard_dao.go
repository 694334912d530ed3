package db

import (
	"context"
	"errors"

	"github.com/vivasst/risk_survey/biz/dal/model"
	"gorm.io/gorm"
)

// HazardDAO wraps persistence for hazards.
type HazardDAO struct{}

func NewHazardDAO() *HazardDAO { return &HazardDAO{} }

func (dao *HazardDAO) Create(ctx context.Context, db *gorm.DB, entity *model.Hazard) error {
	if entity == nil {
		return errors.New("hazard must not be nil")
	}
	return db.WithContext(ctx).Create(entity).Error
}

func (dao *HazardDAO) Save(ctx context.Context, db *gorm.DB, entity *model.Hazard) error {
	if entity == nil {
		return errors.New("hazard must not be nil")
	}
	return db.WithContext(ctx).Save(entity).Error
}

func (dao *HazardDAO) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&model.Hazard{}).Error
}

func (dao *HazardDAO) GetByID(ctx context.Context, db *gorm.DB, id string) (*model.Hazard, error) {
	var entity model.Hazard
	if err := db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (dao *HazardDAO) ListByActivity(ctx context.Context, db *gorm.DB, activityID string) ([]model.Hazard, error) {
	var entities []model.Hazard
	err := db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("created_at ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return entities, nil
}

func (dao *HazardDAO) ListByEnvironment(ctx context.Context, db *gorm.DB, environmentID string) ([]model.Hazard, error) {
	var entities []model.Hazard
	err := db.WithContext(ctx).
		Where("environment_id = ?", environmentID).
		Order("created_at ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// ListAll walks every hazard row. Used by the legacy migration job.
func (dao *HazardDAO) ListAll(ctx context.Context, db *gorm.DB) ([]model.Hazard, error) {
	var entities []model.Hazard
	if err := db.WithContext(ctx).Order("created_at ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (dao *HazardDAO) CountByActivity(ctx context.Context, db *gorm.DB, activityID string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Hazard{}).
		Where("activity_id = ?", activityID).
		Count(&count).Error
	return count, err
}
