package db

import (
	"context"
	"errors"

	"github.com/vivasst/risk_survey/biz/dal/model"
	"gorm.io/gorm"
)

// ActivityDAO wraps persistence for activities.
type ActivityDAO struct{}

func NewActivityDAO() *ActivityDAO { return &ActivityDAO{} }

func (dao *ActivityDAO) Create(ctx context.Context, db *gorm.DB, entity *model.Activity) error {
	if entity == nil {
		return errors.New("activity must not be nil")
	}
	return db.WithContext(ctx).Create(entity).Error
}

func (dao *ActivityDAO) Save(ctx context.Context, db *gorm.DB, entity *model.Activity) error {
	if entity == nil {
		return errors.New("activity must not be nil")
	}
	return db.WithContext(ctx).Save(entity).Error
}

func (dao *ActivityDAO) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&model.Activity{}).Error
}

func (dao *ActivityDAO) GetByID(ctx context.Context, db *gorm.DB, id string) (*model.Activity, error) {
	var entity model.Activity
	if err := db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (dao *ActivityDAO) ListByEnvironment(ctx context.Context, db *gorm.DB, environmentID string) ([]model.Activity, error) {
	var entities []model.Activity
	err := db.WithContext(ctx).
		Where("environment_id = ?", environmentID).
		Order("created_at ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return entities, nil
}

func (dao *ActivityDAO) ListByJobRole(ctx context.Context, db *gorm.DB, jobRoleID string) ([]model.Activity, error) {
	var entities []model.Activity
	err := db.WithContext(ctx).
		Where("job_role_id = ?", jobRoleID).
		Order("created_at ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// FindByName locates an activity under a role by exact name, used by the
// legacy migration to reuse its placeholder activity.
func (dao *ActivityDAO) FindByName(ctx context.Context, db *gorm.DB, jobRoleID, name string) (*model.Activity, error) {
	var entity model.Activity
	err := db.WithContext(ctx).
		Where("job_role_id = ? AND name = ?", jobRoleID, name).
		First(&entity).Error
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (dao *ActivityDAO) CountByEnvironment(ctx context.Context, db *gorm.DB, environmentID string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Activity{}).
		Where("environment_id = ?", environmentID).
		Count(&count).Error
	return count, err
}

func (dao *ActivityDAO) CountByJobRole(ctx context.Context, db *gorm.DB, jobRoleID string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Activity{}).
		Where("job_role_id = ?", jobRoleID).
		Count(&count).Error
	return count, err
}
