package db

import (
	"context"
	"errors"

	"github.com/vivasst/risk_survey/biz/dal/model"
	"gorm.io/gorm"
)

// MeasurementDeviceDAO wraps persistence for calibrated instruments.
type MeasurementDeviceDAO struct{}

func NewMeasurementDeviceDAO() *MeasurementDeviceDAO { return &MeasurementDeviceDAO{} }

func (dao *MeasurementDeviceDAO) Create(ctx context.Context, db *gorm.DB, entity *model.MeasurementDevice) error {
	if entity == nil {
		return errors.New("device must not be nil")
	}
	if entity.SerialNumber == "" {
		return errors.New("serial_number is required")
	}
	return db.WithContext(ctx).Create(entity).Error
}

func (dao *MeasurementDeviceDAO) Save(ctx context.Context, db *gorm.DB, entity *model.MeasurementDevice) error {
	if entity == nil {
		return errors.New("device must not be nil")
	}
	return db.WithContext(ctx).Save(entity).Error
}

func (dao *MeasurementDeviceDAO) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&model.MeasurementDevice{}).Error
}

func (dao *MeasurementDeviceDAO) GetByID(ctx context.Context, db *gorm.DB, id string) (*model.MeasurementDevice, error) {
	var entity model.MeasurementDevice
	if err := db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (dao *MeasurementDeviceDAO) FindBySerial(ctx context.Context, db *gorm.DB, serial string) (*model.MeasurementDevice, error) {
	var entity model.MeasurementDevice
	if err := db.WithContext(ctx).Where("serial_number = ?", serial).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (dao *MeasurementDeviceDAO) List(ctx context.Context, db *gorm.DB, active *bool) ([]model.MeasurementDevice, error) {
	tx := db.WithContext(ctx)
	if active != nil {
		tx = tx.Where("active = ?", *active)
	}

	var entities []model.MeasurementDevice
	if err := tx.Order("serial_number ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}
