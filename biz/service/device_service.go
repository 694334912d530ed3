package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vivasst/risk_survey/biz/dal/model"
	"github.com/vivasst/risk_survey/biz/model/api"
	"github.com/vivasst/risk_survey/pkg/common"
	"github.com/vivasst/risk_survey/pkg/validator"
	"gorm.io/gorm"
)

// RegisterDevice registers a measurement instrument. Serial numbers are
// globally unique.
func (s *Service) RegisterDevice(ctx context.Context, actor common.Actor, input *api.DeviceInput) (*model.MeasurementDevice, error) {
	if input == nil {
		return nil, validationError("device payload is required")
	}
	if err := validator.Struct(input); err != nil {
		return nil, validationError("%s", err.Error())
	}

	var entity *model.MeasurementDevice
	err := s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.logic.deviceDAO.FindBySerial(ctx, tx, input.SerialNumber)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil {
			return duplicateKeyError("device with serial %q already exists", input.SerialNumber)
		}

		active := true
		if input.Active != nil {
			active = *input.Active
		}
		entity = &model.MeasurementDevice{
			ID:                  uuid.New().String(),
			SerialNumber:        input.SerialNumber,
			Brand:               input.Brand,
			Model:               input.Model,
			LastCalibrationDate: input.LastCalibrationDate,
			Note:                input.Note,
			Active:              active,
		}
		if err := s.logic.deviceDAO.Create(ctx, tx, entity); err != nil {
			return err
		}
		return s.recordAudit(ctx, tx, EntityDevice, entity.ID, model.AuditActionCreate, actor, nil, entity)
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// UpdateDevice changes instrument metadata. Measurements already recorded keep
// the instrument label they were stored with.
func (s *Service) UpdateDevice(ctx context.Context, actor common.Actor, id string, input *api.DeviceInput) (*model.MeasurementDevice, error) {
	if input == nil {
		return nil, validationError("device payload is required")
	}
	if err := validator.Struct(input); err != nil {
		return nil, validationError("%s", err.Error())
	}

	var updated *model.MeasurementDevice
	err := s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entity, err := s.logic.deviceDAO.GetByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("device")
			}
			return err
		}
		if input.SerialNumber != entity.SerialNumber {
			other, err := s.logic.deviceDAO.FindBySerial(ctx, tx, input.SerialNumber)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if other != nil && other.ID != entity.ID {
				return duplicateKeyError("device with serial %q already exists", input.SerialNumber)
			}
		}

		before := *entity
		entity.SerialNumber = input.SerialNumber
		entity.Brand = input.Brand
		entity.Model = input.Model
		entity.LastCalibrationDate = input.LastCalibrationDate
		entity.Note = input.Note
		if input.Active != nil {
			entity.Active = *input.Active
		}
		if err := s.logic.deviceDAO.Save(ctx, tx, entity); err != nil {
			return err
		}
		updated = entity
		return s.recordAudit(ctx, tx, EntityDevice, entity.ID, model.AuditActionUpdate, actor, &before, entity)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeactivateDevice retires an instrument from new measurements.
func (s *Service) DeactivateDevice(ctx context.Context, actor common.Actor, id string) error {
	return s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entity, err := s.logic.deviceDAO.GetByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("device")
			}
			return err
		}
		if !entity.Active {
			return nil
		}
		before := *entity
		entity.Active = false
		if err := s.logic.deviceDAO.Save(ctx, tx, entity); err != nil {
			return err
		}
		return s.recordAudit(ctx, tx, EntityDevice, entity.ID, model.AuditActionUpdate, actor, &before, entity)
	})
}

// GetDevice returns one instrument.
func (s *Service) GetDevice(ctx context.Context, id string) (*model.MeasurementDevice, error) {
	entity, err := s.logic.deviceDAO.GetByID(ctx, s.logic.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("device")
		}
		return nil, err
	}
	return entity, nil
}

// ListDevices lists instruments, optionally filtered by the active flag.
func (s *Service) ListDevices(ctx context.Context, active *bool) ([]model.MeasurementDevice, error) {
	return s.logic.deviceDAO.List(ctx, s.logic.db, active)
}
