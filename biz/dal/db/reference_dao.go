package db

import (
	"context"
	"errors"

	"github.com/vivasst/risk_survey/biz/dal/model"
	"gorm.io/gorm"
)

// ReferenceDAO wraps persistence for exposure references and the
// classification range table.
type ReferenceDAO struct{}

func NewReferenceDAO() *ReferenceDAO { return &ReferenceDAO{} }

func (dao *ReferenceDAO) Create(ctx context.Context, db *gorm.DB, entity *model.Reference) error {
	if entity == nil {
		return errors.New("reference must not be nil")
	}
	if entity.MeasurementType == "" {
		return errors.New("measurement_type is required")
	}
	return db.WithContext(ctx).Create(entity).Error
}

func (dao *ReferenceDAO) Save(ctx context.Context, db *gorm.DB, entity *model.Reference) error {
	if entity == nil {
		return errors.New("reference must not be nil")
	}
	return db.WithContext(ctx).Save(entity).Error
}

func (dao *ReferenceDAO) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&model.Reference{}).Error
}

func (dao *ReferenceDAO) GetByID(ctx context.Context, db *gorm.DB, id string) (*model.Reference, error) {
	var entity model.Reference
	if err := db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// FindActiveByType returns the active reference for a measurement type.
func (dao *ReferenceDAO) FindActiveByType(ctx context.Context, db *gorm.DB, measurementType string) (*model.Reference, error) {
	var entity model.Reference
	err := db.WithContext(ctx).
		Where("measurement_type = ? AND active = ?", measurementType, true).
		First(&entity).Error
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (dao *ReferenceDAO) List(ctx context.Context, db *gorm.DB, active *bool) ([]model.Reference, error) {
	tx := db.WithContext(ctx)
	if active != nil {
		tx = tx.Where("active = ?", *active)
	}

	var entities []model.Reference
	if err := tx.Order("measurement_type ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// ListActiveRanges returns the active classification ranges in evaluation
// order. An empty result means the caller should fall back to the built-in
// default table.
func (dao *ReferenceDAO) ListActiveRanges(ctx context.Context, db *gorm.DB) ([]model.ClassificationRange, error) {
	var entities []model.ClassificationRange
	err := db.WithContext(ctx).
		Where("active = ?", true).
		Order("position ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return entities, nil
}

func (dao *ReferenceDAO) SaveRange(ctx context.Context, db *gorm.DB, entity *model.ClassificationRange) error {
	if entity == nil {
		return errors.New("classification range must not be nil")
	}
	return db.WithContext(ctx).Save(entity).Error
}

func (dao *ReferenceDAO) CountRanges(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.ClassificationRange{}).Count(&count).Error
	return count, err
}
