package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vivasst/risk_survey/biz/dal/model"
	"github.com/vivasst/risk_survey/biz/model/api"
	"github.com/vivasst/risk_survey/pkg/common"
	"github.com/vivasst/risk_survey/pkg/validator"
	"gorm.io/gorm"
)

// compareToReference classifies a measured value against a reference. The
// near band starts at limit - limit*proximity%, so values approaching the
// limit are flagged before they cross it.
func compareToReference(measured float64, ref *model.Reference) (string, model.AppliedReference) {
	if ref == nil {
		return model.ComparisonNoReference, model.AppliedReference{}
	}
	applied := model.AppliedReference{
		Limit:            ref.ReferenceValue,
		Unit:             ref.Unit,
		ProximityPercent: ref.ProximityPercent,
	}
	limit := ref.ReferenceValue
	near := limit - limit*(ref.ProximityPercent/100)
	switch {
	case measured > limit:
		return model.ComparisonAboveReference, applied
	case measured >= near:
		return model.ComparisonNearLimit, applied
	default:
		return model.ComparisonBelowReference, applied
	}
}

// checkMeasurementPreconditions enforces, in order: editable environment,
// qualitative-before-quantitative, quantitative-capable library entry and a
// valid active device. Returns the device for label denormalization.
func (s *Service) checkMeasurementPreconditions(ctx context.Context, tx *gorm.DB, hz *model.Hazard, deviceID string) (*model.MeasurementDevice, error) {
	if _, err := s.loadEditableEnvironment(ctx, tx, hz.EnvironmentID); err != nil {
		return nil, err
	}

	if _, err := s.logic.assessmentDAO.GetByHazard(ctx, tx, hz.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQualitativeRequired
		}
		return nil, err
	}

	if hz.RiskLibraryID == "" {
		return nil, ErrQuantitativeNotAllowed
	}
	entry, err := s.logic.libraryDAO.GetByID(ctx, tx, hz.RiskLibraryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuantitativeNotAllowed
		}
		return nil, err
	}
	if !entry.AllowsQuantitative {
		return nil, ErrQuantitativeNotAllowed
	}

	device, err := s.logic.deviceDAO.GetByID(ctx, tx, deviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidDevice
		}
		return nil, err
	}
	if !device.Active {
		return nil, ErrInvalidDevice
	}
	return device, nil
}

// activeReference loads the active reference for a measurement type. A
// missing reference is not an error: the comparison degrades to no_reference.
func (s *Service) activeReference(ctx context.Context, tx *gorm.DB, measurementType string) (*model.Reference, error) {
	ref, err := s.logic.referenceDAO.FindActiveByType(ctx, tx, measurementType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ref, nil
}

// RecordMeasurement stores a quantitative reading for a hazard.
func (s *Service) RecordMeasurement(ctx context.Context, actor common.Actor, input *api.MeasurementInput) (*model.Measurement, error) {
	if input == nil {
		return nil, validationError("measurement payload is required")
	}
	if err := validator.Struct(input); err != nil {
		return nil, validationError("%s", err.Error())
	}

	var entity *model.Measurement
	err := s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hz, err := s.logic.hazardDAO.GetByID(ctx, tx, input.HazardID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("hazard")
			}
			return err
		}
		device, err := s.checkMeasurementPreconditions(ctx, tx, hz, input.DeviceID)
		if err != nil {
			return err
		}
		ref, err := s.activeReference(ctx, tx, input.MeasurementType)
		if err != nil {
			return err
		}
		comparison, applied := compareToReference(input.MeasuredValue, ref)

		date := time.Now()
		if input.MeasurementDate != nil {
			date = *input.MeasurementDate
		}
		entity = &model.Measurement{
			ID:                uuid.New().String(),
			HazardID:          hz.ID,
			EnvironmentID:     hz.EnvironmentID,
			DeviceID:          device.ID,
			MeasurementType:   input.MeasurementType,
			MeasuredValue:     input.MeasuredValue,
			Unit:              input.Unit,
			ExposureTime:      input.ExposureTime,
			ObservationMethod: input.ObservationMethod,
			InstrumentUsed:    device.Label(),
			MeasurementDate:   date,
			Comparison:        comparison,
			AppliedReference:  applied,
		}
		if err := s.logic.measurementDAO.Create(ctx, tx, entity); err != nil {
			return err
		}
		return s.recordAudit(ctx, tx, EntityMeasurement, entity.ID, model.AuditActionCreate, actor, nil, entity)
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// UpdateMeasurement re-validates preconditions and re-evaluates the reference
// comparison, exactly as on creation.
func (s *Service) UpdateMeasurement(ctx context.Context, actor common.Actor, id string, input *api.MeasurementInput) (*model.Measurement, error) {
	if input == nil {
		return nil, validationError("measurement payload is required")
	}
	if err := validator.Struct(input); err != nil {
		return nil, validationError("%s", err.Error())
	}

	var updated *model.Measurement
	err := s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := s.logic.measurementDAO.GetByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("measurement")
			}
			return err
		}
		hz, err := s.logic.hazardDAO.GetByID(ctx, tx, m.HazardID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("hazard")
			}
			return err
		}
		device, err := s.checkMeasurementPreconditions(ctx, tx, hz, input.DeviceID)
		if err != nil {
			return err
		}
		ref, err := s.activeReference(ctx, tx, input.MeasurementType)
		if err != nil {
			return err
		}
		comparison, applied := compareToReference(input.MeasuredValue, ref)

		before := *m
		m.DeviceID = device.ID
		m.MeasurementType = input.MeasurementType
		m.MeasuredValue = input.MeasuredValue
		m.Unit = input.Unit
		m.ExposureTime = input.ExposureTime
		m.ObservationMethod = input.ObservationMethod
		m.InstrumentUsed = device.Label()
		if input.MeasurementDate != nil {
			m.MeasurementDate = *input.MeasurementDate
		}
		m.Comparison = comparison
		m.AppliedReference = applied

		if err := s.logic.measurementDAO.Save(ctx, tx, m); err != nil {
			return err
		}
		updated = m
		return s.recordAudit(ctx, tx, EntityMeasurement, m.ID, model.AuditActionUpdate, actor, &before, m)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteMeasurement removes one reading. Blocked after finalization like any
// other mutation in the subtree.
func (s *Service) DeleteMeasurement(ctx context.Context, actor common.Actor, id string) error {
	return s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := s.logic.measurementDAO.GetByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("measurement")
			}
			return err
		}
		if _, err := s.loadEditableEnvironment(ctx, tx, m.EnvironmentID); err != nil {
			return err
		}
		if err := s.logic.measurementDAO.Delete(ctx, tx, id); err != nil {
			return err
		}
		return s.recordAudit(ctx, tx, EntityMeasurement, id, model.AuditActionDelete, actor, m, nil)
	})
}

// ListMeasurements returns all readings for a hazard.
func (s *Service) ListMeasurements(ctx context.Context, hazardID string) ([]model.Measurement, error) {
	if hazardID == "" {
		return nil, validationError("hazardId is required")
	}
	return s.logic.measurementDAO.ListByHazard(ctx, s.logic.db, hazardID)
}
