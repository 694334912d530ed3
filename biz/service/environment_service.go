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

// loadEditableEnvironment fetches the owning environment and enforces the
// editability gate. Every mutating path in the subtree calls this first, so
// no write is ever attempted against a finalized survey.
func (s *Service) loadEditableEnvironment(ctx context.Context, tx *gorm.DB, environmentID string) (*model.Environment, error) {
	env, err := s.logic.environmentDAO.GetByID(ctx, tx, environmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("environment")
		}
		return nil, err
	}
	if env.IsFinalized() {
		return nil, ErrSurveyFinalized
	}
	return env, nil
}

// CreateEnvironment creates a draft environment.
func (s *Service) CreateEnvironment(ctx context.Context, actor common.Actor, input *api.EnvironmentInput) (*model.Environment, error) {
	if input == nil {
		return nil, validationError("environment payload is required")
	}
	if err := validator.Struct(input); err != nil {
		return nil, validationError("%s", err.Error())
	}

	entity := &model.Environment{
		ID:                   uuid.New().String(),
		CompanyID:            input.CompanyID,
		Unit:                 input.Unit,
		Sector:               input.Sector,
		Name:                 input.Name,
		Type:                 input.Type,
		ApproxAreaM2:         input.ApproxAreaM2,
		ApproxCeilingHeight:  input.ApproxCeilingHeight,
		PhysicalConditions:   input.PhysicalConditions,
		SafetyInfrastructure: input.SafetyInfrastructure,
		StructuralElements:   input.StructuralElements,
		Attachments:          input.Attachments,
		SurveyStatus:         model.SurveyStatusDraft,
	}

	err := s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.logic.environmentDAO.Create(ctx, tx, entity); err != nil {
			return err
		}
		return s.recordAudit(ctx, tx, EntityEnvironment, entity.ID, model.AuditActionCreate, actor, nil, entity)
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// UpdateEnvironment applies field changes to a draft environment.
func (s *Service) UpdateEnvironment(ctx context.Context, actor common.Actor, id string, input *api.EnvironmentInput) (*model.Environment, error) {
	if input == nil {
		return nil, validationError("environment payload is required")
	}
	if err := validator.Struct(input); err != nil {
		return nil, validationError("%s", err.Error())
	}

	var updated *model.Environment
	err := s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		env, err := s.loadEditableEnvironment(ctx, tx, id)
		if err != nil {
			return err
		}
		before := *env

		env.CompanyID = input.CompanyID
		env.Unit = input.Unit
		env.Sector = input.Sector
		env.Name = input.Name
		env.Type = input.Type
		env.ApproxAreaM2 = input.ApproxAreaM2
		env.ApproxCeilingHeight = input.ApproxCeilingHeight
		env.PhysicalConditions = input.PhysicalConditions
		env.SafetyInfrastructure = input.SafetyInfrastructure
		env.StructuralElements = input.StructuralElements
		env.Attachments = input.Attachments

		if err := s.logic.environmentDAO.Save(ctx, tx, env); err != nil {
			return err
		}
		updated = env
		return s.recordAudit(ctx, tx, EntityEnvironment, env.ID, model.AuditActionUpdate, actor, &before, env)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteEnvironment removes a draft environment with no remaining children.
func (s *Service) DeleteEnvironment(ctx context.Context, actor common.Actor, id string) error {
	return s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		env, err := s.loadEditableEnvironment(ctx, tx, id)
		if err != nil {
			return err
		}

		roles, err := s.logic.jobRoleDAO.CountByEnvironment(ctx, tx, id)
		if err != nil {
			return err
		}
		if roles > 0 {
			return hasDependentsError("environment", "job role")
		}
		activities, err := s.logic.activityDAO.CountByEnvironment(ctx, tx, id)
		if err != nil {
			return err
		}
		if activities > 0 {
			return hasDependentsError("environment", "activity")
		}

		if err := s.logic.environmentDAO.Delete(ctx, tx, id); err != nil {
			return err
		}
		return s.recordAudit(ctx, tx, EntityEnvironment, id, model.AuditActionDelete, actor, env, nil)
	})
}

// GetEnvironment returns one environment by id.
func (s *Service) GetEnvironment(ctx context.Context, id string) (*model.Environment, error) {
	env, err := s.logic.environmentDAO.GetByID(ctx, s.logic.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("environment")
		}
		return nil, err
	}
	return env, nil
}

// ListEnvironments returns environments filtered by company and status.
func (s *Service) ListEnvironments(ctx context.Context, companyID, status string) ([]model.Environment, error) {
	if !validator.OneOf(status, true, model.SurveyStatusDraft, model.SurveyStatusFinalized) {
		return nil, validationError("unknown survey status %q", status)
	}
	return s.logic.environmentDAO.List(ctx, s.logic.db, companyID, status)
}
