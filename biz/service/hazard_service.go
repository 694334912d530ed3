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

// resolveLibraryEntry verifies the referenced hazard library entry exists and
// is active. An empty id is allowed: the hazard then cannot receive
// quantitative measurements.
func (s *Service) resolveLibraryEntry(ctx context.Context, tx *gorm.DB, libraryID string) (*model.HazardLibrary, error) {
	if libraryID == "" {
		return nil, nil
	}
	entry, err := s.logic.libraryDAO.GetByID(ctx, tx, libraryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidLibraryReference
		}
		return nil, err
	}
	if !entry.Active {
		return nil, ErrInvalidLibraryReference
	}
	return entry, nil
}

// CreateHazard creates a hazard under an activity, denormalizing environment
// and company ids from the parent chain.
func (s *Service) CreateHazard(ctx context.Context, actor common.Actor, input *api.HazardInput) (*model.Hazard, error) {
	if input == nil {
		return nil, validationError("hazard payload is required")
	}
	if err := validator.Struct(input); err != nil {
		return nil, validationError("%s", err.Error())
	}
	agentCategory := input.AgentType()
	if agentCategory == "" {
		return nil, validationError("riskType is required")
	}

	var entity *model.Hazard
	err := s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		act, err := s.logic.activityDAO.GetByID(ctx, tx, input.ActivityID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("activity")
			}
			return err
		}
		env, err := s.loadEditableEnvironment(ctx, tx, act.EnvironmentID)
		if err != nil {
			return err
		}
		if _, err := s.resolveLibraryEntry(ctx, tx, input.RiskLibraryID); err != nil {
			return err
		}

		condition := input.Condition
		if condition == "" {
			condition = model.ConditionNormal
		}
		entity = &model.Hazard{
			ID:               uuid.New().String(),
			ActivityID:       act.ID,
			EnvironmentID:    env.ID,
			CompanyID:        env.CompanyID,
			RiskLibraryID:    input.RiskLibraryID,
			AgentCategory:    agentCategory,
			Description:      input.Description,
			HazardousEvent:   input.HazardousEvent,
			PotentialDamage:  input.PotentialDamage,
			Condition:        condition,
			ExposedWorkers:   input.ExposedWorkers,
			HomogeneousGroup: input.HomogeneousGroup,
			ExistingControls: input.ExistingControls,
			Attachments:      input.Attachments,
			IsCustomRisk:     input.IsCustomRisk,
		}
		if err := s.logic.hazardDAO.Create(ctx, tx, entity); err != nil {
			return err
		}
		return s.recordAudit(ctx, tx, EntityHazard, entity.ID, model.AuditActionCreate, actor, nil, entity)
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// UpdateHazard applies field changes to a hazard in a draft environment.
func (s *Service) UpdateHazard(ctx context.Context, actor common.Actor, id string, input *api.HazardInput) (*model.Hazard, error) {
	if input == nil {
		return nil, validationError("hazard payload is required")
	}
	if err := validator.Struct(input); err != nil {
		return nil, validationError("%s", err.Error())
	}
	agentCategory := input.AgentType()
	if agentCategory == "" {
		return nil, validationError("riskType is required")
	}

	var updated *model.Hazard
	err := s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hz, err := s.logic.hazardDAO.GetByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("hazard")
			}
			return err
		}
		if _, err := s.loadEditableEnvironment(ctx, tx, hz.EnvironmentID); err != nil {
			return err
		}
		if input.RiskLibraryID != hz.RiskLibraryID {
			if _, err := s.resolveLibraryEntry(ctx, tx, input.RiskLibraryID); err != nil {
				return err
			}
		}

		before := *hz
		hz.RiskLibraryID = input.RiskLibraryID
		hz.AgentCategory = agentCategory
		hz.Description = input.Description
		hz.HazardousEvent = input.HazardousEvent
		hz.PotentialDamage = input.PotentialDamage
		if input.Condition != "" {
			hz.Condition = input.Condition
		}
		hz.ExposedWorkers = input.ExposedWorkers
		hz.HomogeneousGroup = input.HomogeneousGroup
		hz.ExistingControls = input.ExistingControls
		hz.Attachments = input.Attachments
		hz.IsCustomRisk = input.IsCustomRisk

		if err := s.logic.hazardDAO.Save(ctx, tx, hz); err != nil {
			return err
		}
		updated = hz
		return s.recordAudit(ctx, tx, EntityHazard, hz.ID, model.AuditActionUpdate, actor, &before, hz)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteHazard removes a hazard together with its assessment and
// measurements. This is the only cascading delete in the hierarchy.
func (s *Service) DeleteHazard(ctx context.Context, actor common.Actor, id string) error {
	return s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hz, err := s.logic.hazardDAO.GetByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("hazard")
			}
			return err
		}
		if _, err := s.loadEditableEnvironment(ctx, tx, hz.EnvironmentID); err != nil {
			return err
		}

		if err := s.logic.assessmentDAO.DeleteByHazard(ctx, tx, id); err != nil {
			return err
		}
		if err := s.logic.measurementDAO.DeleteByHazard(ctx, tx, id); err != nil {
			return err
		}
		if err := s.logic.hazardDAO.Delete(ctx, tx, id); err != nil {
			return err
		}
		return s.recordAudit(ctx, tx, EntityHazard, id, model.AuditActionDelete, actor, hz, nil)
	})
}

// GetHazard returns one hazard with the legacy dual-name agent field.
func (s *Service) GetHazard(ctx context.Context, id string) (*api.HazardView, error) {
	hz, err := s.logic.hazardDAO.GetByID(ctx, s.logic.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("hazard")
		}
		return nil, err
	}
	return api.NewHazardView(hz), nil
}

// ListHazards returns hazards under an activity or an environment.
func (s *Service) ListHazards(ctx context.Context, environmentID, activityID string) ([]*api.HazardView, error) {
	var (
		items []model.Hazard
		err   error
	)
	switch {
	case activityID != "":
		items, err = s.logic.hazardDAO.ListByActivity(ctx, s.logic.db, activityID)
	case environmentID != "":
		items, err = s.logic.hazardDAO.ListByEnvironment(ctx, s.logic.db, environmentID)
	default:
		return nil, validationError("environmentId or activityId is required")
	}
	if err != nil {
		return nil, err
	}
	return api.HazardViews(items), nil
}
