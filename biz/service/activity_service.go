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

// resolveActivityRole verifies the job role exists and belongs to the same
// environment the activity claims.
func (s *Service) resolveActivityRole(ctx context.Context, tx *gorm.DB, environmentID, jobRoleID string) (*model.JobRole, error) {
	role, err := s.logic.jobRoleDAO.GetByID(ctx, tx, jobRoleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("job role")
		}
		return nil, err
	}
	if role.EnvironmentID != environmentID {
		return nil, crossReferenceError("job role %s belongs to a different environment", jobRoleID)
	}
	return role, nil
}

// CreateActivity creates an activity under a draft environment. The linked
// job role must belong to the same environment.
func (s *Service) CreateActivity(ctx context.Context, actor common.Actor, input *api.ActivityInput) (*model.Activity, error) {
	if input == nil {
		return nil, validationError("activity payload is required")
	}
	if err := validator.Struct(input); err != nil {
		return nil, validationError("%s", err.Error())
	}

	var entity *model.Activity
	err := s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		env, err := s.loadEditableEnvironment(ctx, tx, input.EnvironmentID)
		if err != nil {
			return err
		}
		if _, err := s.resolveActivityRole(ctx, tx, env.ID, input.JobRoleID); err != nil {
			return err
		}

		entity = &model.Activity{
			ID:                 uuid.New().String(),
			EnvironmentID:      env.ID,
			JobRoleID:          input.JobRoleID,
			CompanyID:          env.CompanyID,
			Name:               input.Name,
			TaskDescription:    input.TaskDescription,
			Frequency:          input.Frequency,
			WorkerCount:        input.WorkerCount,
			IsolatedWork:       input.IsolatedWork,
			ThirdPartyInvolved: input.ThirdPartyInvolved,
			ToolsUsed:          input.ToolsUsed,
			MaterialsUsed:      input.MaterialsUsed,
			Attachments:        input.Attachments,
		}
		if err := s.logic.activityDAO.Create(ctx, tx, entity); err != nil {
			return err
		}
		return s.recordAudit(ctx, tx, EntityActivity, entity.ID, model.AuditActionCreate, actor, nil, entity)
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// UpdateActivity applies field changes, re-checking the role cross-reference.
func (s *Service) UpdateActivity(ctx context.Context, actor common.Actor, id string, input *api.ActivityInput) (*model.Activity, error) {
	if input == nil {
		return nil, validationError("activity payload is required")
	}
	if err := validator.Struct(input); err != nil {
		return nil, validationError("%s", err.Error())
	}

	var updated *model.Activity
	err := s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		act, err := s.logic.activityDAO.GetByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("activity")
			}
			return err
		}
		if _, err := s.loadEditableEnvironment(ctx, tx, act.EnvironmentID); err != nil {
			return err
		}
		if _, err := s.resolveActivityRole(ctx, tx, act.EnvironmentID, input.JobRoleID); err != nil {
			return err
		}

		before := *act
		act.JobRoleID = input.JobRoleID
		act.Name = input.Name
		act.TaskDescription = input.TaskDescription
		act.Frequency = input.Frequency
		act.WorkerCount = input.WorkerCount
		act.IsolatedWork = input.IsolatedWork
		act.ThirdPartyInvolved = input.ThirdPartyInvolved
		act.ToolsUsed = input.ToolsUsed
		act.MaterialsUsed = input.MaterialsUsed
		act.Attachments = input.Attachments

		if err := s.logic.activityDAO.Save(ctx, tx, act); err != nil {
			return err
		}
		updated = act
		return s.recordAudit(ctx, tx, EntityActivity, act.ID, model.AuditActionUpdate, actor, &before, act)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteActivity removes an activity that has no linked hazards.
func (s *Service) DeleteActivity(ctx context.Context, actor common.Actor, id string) error {
	return s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		act, err := s.logic.activityDAO.GetByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("activity")
			}
			return err
		}
		if _, err := s.loadEditableEnvironment(ctx, tx, act.EnvironmentID); err != nil {
			return err
		}

		hazards, err := s.logic.hazardDAO.CountByActivity(ctx, tx, id)
		if err != nil {
			return err
		}
		if hazards > 0 {
			return hasDependentsError("activity", "hazard")
		}

		if err := s.logic.activityDAO.Delete(ctx, tx, id); err != nil {
			return err
		}
		return s.recordAudit(ctx, tx, EntityActivity, id, model.AuditActionDelete, actor, act, nil)
	})
}

// GetActivity returns one activity by id.
func (s *Service) GetActivity(ctx context.Context, id string) (*model.Activity, error) {
	act, err := s.logic.activityDAO.GetByID(ctx, s.logic.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("activity")
		}
		return nil, err
	}
	return act, nil
}

// ListActivities returns activities under an environment, optionally
// restricted to a single job role.
func (s *Service) ListActivities(ctx context.Context, environmentID, jobRoleID string) ([]model.Activity, error) {
	if jobRoleID != "" {
		return s.logic.activityDAO.ListByJobRole(ctx, s.logic.db, jobRoleID)
	}
	if environmentID == "" {
		return nil, validationError("environmentId is required")
	}
	return s.logic.activityDAO.ListByEnvironment(ctx, s.logic.db, environmentID)
}
