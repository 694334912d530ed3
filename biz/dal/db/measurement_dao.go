package db

import (
	"context"
	"errors"

	"github.com/vivasst/risk_survey/biz/dal/model"
	"gorm.io/gorm"
)

// MeasurementDAO wraps persistence for quantitative measurements.
type MeasurementDAO struct{}

func NewMeasurementDAO() *MeasurementDAO { return &MeasurementDAO{} }

func (dao *MeasurementDAO) Create(ctx context.Context, db *gorm.DB, entity *model.Measurement) error {
	if entity == nil {
		return errors.New("measurement must not be nil")
	}
	return db.WithContext(ctx).Create(entity).Error
}

func (dao *MeasurementDAO) Save(ctx context.Context, db *gorm.DB, entity *model.Measurement) error {
	if entity == nil {
		return errors.New("measurement must not be nil")
	}
	return db.WithContext(ctx).Save(entity).Error
}

func (dao *MeasurementDAO) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&model.Measurement{}).Error
}

func (dao *MeasurementDAO) DeleteByHazard(ctx context.Context, db *gorm.DB, hazardID string) error {
	return db.WithContext(ctx).Where("hazard_id = ?", hazardID).Delete(&model.Measurement{}).Error
}

func (dao *MeasurementDAO) GetByID(ctx context.Context, db *gorm.DB, id string) (*model.Measurement, error) {
	var entity model.Measurement
	if err := db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (dao *MeasurementDAO) ListByHazard(ctx context.Context, db *gorm.DB, hazardID string) ([]model.Measurement, error) {
	var entities []model.Measurement
	err := db.WithContext(ctx).
		Where("hazard_id = ?", hazardID).
		Order("measurement_date ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return entities, nil
}

func (dao *MeasurementDAO) ListByEnvironment(ctx context.Context, db *gorm.DB, environmentID string) ([]model.Measurement, error) {
	var entities []model.Measurement
	err := db.WithContext(ctx).
		Where("environment_id = ?", environmentID).
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return entities, nil
}
