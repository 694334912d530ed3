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

// UpsertReference stores the exposure reference for one measurement type. One
// active reference per type: an existing active row for the same type is
// updated in place.
func (s *Service) UpsertReference(ctx context.Context, actor common.Actor, input *api.ReferenceInput) (*model.Reference, error) {
	if input == nil {
		return nil, validationError("reference payload is required")
	}
	if err := validator.Struct(input); err != nil {
		return nil, validationError("%s", err.Error())
	}

	var result *model.Reference
	err := s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.logic.referenceDAO.FindActiveByType(ctx, tx, input.MeasurementType)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if existing == nil {
			entity := &model.Reference{
				ID:               uuid.New().String(),
				MeasurementType:  input.MeasurementType,
				ReferenceValue:   input.ReferenceValue,
				Unit:             input.Unit,
				ProximityPercent: input.ProximityPercent,
				Active:           true,
			}
			if input.Active != nil {
				entity.Active = *input.Active
			}
			if err := s.logic.referenceDAO.Create(ctx, tx, entity); err != nil {
				return err
			}
			result = entity
			return s.recordAudit(ctx, tx, EntityReference, entity.ID, model.AuditActionCreate, actor, nil, entity)
		}

		before := *existing
		existing.ReferenceValue = input.ReferenceValue
		existing.Unit = input.Unit
		existing.ProximityPercent = input.ProximityPercent
		if input.Active != nil {
			existing.Active = *input.Active
		}
		if err := s.logic.referenceDAO.Save(ctx, tx, existing); err != nil {
			return err
		}
		result = existing
		return s.recordAudit(ctx, tx, EntityReference, existing.ID, model.AuditActionUpdate, actor, &before, existing)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListReferences lists exposure references, optionally filtered by the active
// flag.
func (s *Service) ListReferences(ctx context.Context, active *bool) ([]model.Reference, error) {
	return s.logic.referenceDAO.List(ctx, s.logic.db, active)
}

// SaveClassificationRanges replaces the active classification table. The new
// table must tile the 1..25 score space without gaps so every possible
// probability x severity product maps to a configured label.
func (s *Service) SaveClassificationRanges(ctx context.Context, actor common.Actor, ranges []model.ClassificationRange) error {
	if len(ranges) == 0 {
		return validationError("at least one classification range is required")
	}
	for i := range ranges {
		r := &ranges[i]
		if !validator.OneOf(r.Label, false,
			model.ClassificationBaixo, model.ClassificationMedio,
			model.ClassificationAlto, model.ClassificationCritico) {
			return validationError("unknown classification label %q", r.Label)
		}
		if r.MinScore < 1 || r.MaxScore > 25 || r.MinScore > r.MaxScore {
			return validationError("range %q has invalid bounds [%d, %d]", r.Label, r.MinScore, r.MaxScore)
		}
	}

	return s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.logic.referenceDAO.ListActiveRanges(ctx, tx)
		if err != nil {
			return err
		}
		for i := range current {
			current[i].Active = false
			if err := s.logic.referenceDAO.SaveRange(ctx, tx, &current[i]); err != nil {
				return err
			}
		}
		for i := range ranges {
			r := &ranges[i]
			if r.ID == "" {
				r.ID = uuid.New().String()
			}
			r.Position = i + 1
			r.Active = true
			if err := s.logic.referenceDAO.SaveRange(ctx, tx, r); err != nil {
				return err
			}
		}
		return s.recordAudit(ctx, tx, EntityReference, "classification_ranges", model.AuditActionUpdate, actor, nil, map[string]any{"ranges": ranges})
	})
}

// ListClassificationRanges returns the active table, or the built-in default
// when none is stored.
func (s *Service) ListClassificationRanges(ctx context.Context) ([]model.ClassificationRange, error) {
	ranges, err := s.logic.referenceDAO.ListActiveRanges(ctx, s.logic.db)
	if err != nil {
		return nil, err
	}
	if len(ranges) == 0 {
		return defaultRanges, nil
	}
	return ranges, nil
}
