package db

import (
	"context"
	"errors"

	"github.com/vivasst/risk_survey/biz/dal/model"
	"gorm.io/gorm"
)

// JobRoleDAO wraps persistence for job roles (cargos).
type JobRoleDAO struct{}

func NewJobRoleDAO() *JobRoleDAO { return &JobRoleDAO{} }

func (dao *JobRoleDAO) Create(ctx context.Context, db *gorm.DB, entity *model.JobRole) error {
	if entity == nil {
		return errors.New("job role must not be nil")
	}
	return db.WithContext(ctx).Create(entity).Error
}

func (dao *JobRoleDAO) Save(ctx context.Context, db *gorm.DB, entity *model.JobRole) error {
	if entity == nil {
		return errors.New("job role must not be nil")
	}
	return db.WithContext(ctx).Save(entity).Error
}

func (dao *JobRoleDAO) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&model.JobRole{}).Error
}

func (dao *JobRoleDAO) GetByID(ctx context.Context, db *gorm.DB, id string) (*model.JobRole, error) {
	var entity model.JobRole
	if err := db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// ListByEnvironment returns all roles under one environment.
func (dao *JobRoleDAO) ListByEnvironment(ctx context.Context, db *gorm.DB, environmentID string) ([]model.JobRole, error) {
	var entities []model.JobRole
	err := db.WithContext(ctx).
		Where("environment_id = ?", environmentID).
		Order("name ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// FindByName locates a role by its unique (environment, name) key.
func (dao *JobRoleDAO) FindByName(ctx context.Context, db *gorm.DB, environmentID, name string) (*model.JobRole, error) {
	var entity model.JobRole
	err := db.WithContext(ctx).
		Where("environment_id = ? AND name = ?", environmentID, name).
		First(&entity).Error
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// CountByEnvironment counts roles under an environment, used by delete guards.
func (dao *JobRoleDAO) CountByEnvironment(ctx context.Context, db *gorm.DB, environmentID string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.JobRole{}).
		Where("environment_id = ?", environmentID).
		Count(&count).Error
	return count, err
}
