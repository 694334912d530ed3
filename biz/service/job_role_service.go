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

// CreateJobRole creates a role under a draft environment. Role names are
// unique within their environment.
func (s *Service) CreateJobRole(ctx context.Context, actor common.Actor, input *api.JobRoleInput) (*model.JobRole, error) {
	if input == nil {
		return nil, validationError("job role payload is required")
	}
	if err := validator.Struct(input); err != nil {
		return nil, validationError("%s", err.Error())
	}

	var entity *model.JobRole
	err := s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		env, err := s.loadEditableEnvironment(ctx, tx, input.EnvironmentID)
		if err != nil {
			return err
		}

		if _, err := s.logic.jobRoleDAO.FindByName(ctx, tx, env.ID, input.Name); err == nil {
			return duplicateKeyError("job role %q already exists in this environment", input.Name)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		active := true
		if input.Active != nil {
			active = *input.Active
		}
		entity = &model.JobRole{
			ID:            uuid.New().String(),
			EnvironmentID: env.ID,
			CompanyID:     env.CompanyID,
			Unit:          env.Unit,
			Sector:        env.Sector,
			Name:          input.Name,
			Description:   input.Description,
			Active:        active,
		}
		if err := s.logic.jobRoleDAO.Create(ctx, tx, entity); err != nil {
			return err
		}
		return s.recordAudit(ctx, tx, EntityJobRole, entity.ID, model.AuditActionCreate, actor, nil, entity)
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// UpdateJobRole renames or re-describes a role in a draft environment.
func (s *Service) UpdateJobRole(ctx context.Context, actor common.Actor, id string, input *api.JobRoleInput) (*model.JobRole, error) {
	if input == nil {
		return nil, validationError("job role payload is required")
	}
	if err := validator.Struct(input); err != nil {
		return nil, validationError("%s", err.Error())
	}

	var updated *model.JobRole
	err := s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		role, err := s.logic.jobRoleDAO.GetByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("job role")
			}
			return err
		}
		if _, err := s.loadEditableEnvironment(ctx, tx, role.EnvironmentID); err != nil {
			return err
		}

		if input.Name != role.Name {
			if _, err := s.logic.jobRoleDAO.FindByName(ctx, tx, role.EnvironmentID, input.Name); err == nil {
				return duplicateKeyError("job role %q already exists in this environment", input.Name)
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		before := *role
		role.Name = input.Name
		role.Description = input.Description
		if input.Active != nil {
			role.Active = *input.Active
		}
		if err := s.logic.jobRoleDAO.Save(ctx, tx, role); err != nil {
			return err
		}
		updated = role
		return s.recordAudit(ctx, tx, EntityJobRole, role.ID, model.AuditActionUpdate, actor, &before, role)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteJobRole removes a role that has no linked activities.
func (s *Service) DeleteJobRole(ctx context.Context, actor common.Actor, id string) error {
	return s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		role, err := s.logic.jobRoleDAO.GetByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("job role")
			}
			return err
		}
		if _, err := s.loadEditableEnvironment(ctx, tx, role.EnvironmentID); err != nil {
			return err
		}

		activities, err := s.logic.activityDAO.CountByJobRole(ctx, tx, id)
		if err != nil {
			return err
		}
		if activities > 0 {
			return hasDependentsError("job role", "activity")
		}

		if err := s.logic.jobRoleDAO.Delete(ctx, tx, id); err != nil {
			return err
		}
		return s.recordAudit(ctx, tx, EntityJobRole, id, model.AuditActionDelete, actor, role, nil)
	})
}

// GetJobRole returns one role by id.
func (s *Service) GetJobRole(ctx context.Context, id string) (*model.JobRole, error) {
	role, err := s.logic.jobRoleDAO.GetByID(ctx, s.logic.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("job role")
		}
		return nil, err
	}
	return role, nil
}

// ListJobRoles returns all roles under an environment.
func (s *Service) ListJobRoles(ctx context.Context, environmentID string) ([]model.JobRole, error) {
	if environmentID == "" {
		return nil, validationError("environmentId is required")
	}
	return s.logic.jobRoleDAO.ListByEnvironment(ctx, s.logic.db, environmentID)
}
