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

// CreateLibraryEntry registers a catalog entry. (type, title) is unique, so a
// duplicate is reported before gorm surfaces the constraint violation.
func (s *Service) CreateLibraryEntry(ctx context.Context, actor common.Actor, input *api.LibraryInput) (*model.HazardLibrary, error) {
	if input == nil {
		return nil, validationError("library payload is required")
	}
	if err := validator.Struct(input); err != nil {
		return nil, validationError("%s", err.Error())
	}

	var entity *model.HazardLibrary
	err := s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.logic.libraryDAO.FindByTypeTitle(ctx, tx, input.Type, input.Title)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil {
			return duplicateKeyError("library entry %q already exists for type %s", input.Title, input.Type)
		}

		active := true
		if input.Active != nil {
			active = *input.Active
		}
		entity = &model.HazardLibrary{
			ID:                 uuid.New().String(),
			Type:               input.Type,
			Title:              input.Title,
			Hazard:             input.Hazard,
			HazardousEvent:     input.HazardousEvent,
			PotentialDamage:    input.PotentialDamage,
			AllowsQuantitative: input.AllowsQuantitative,
			Origin:             model.LibraryOriginCustom,
			Active:             active,
		}
		if err := s.logic.libraryDAO.Create(ctx, tx, entity); err != nil {
			return err
		}
		return s.recordAudit(ctx, tx, EntityLibrary, entity.ID, model.AuditActionCreate, actor, nil, entity)
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// UpdateLibraryEntry changes a catalog entry. Hazards referencing it are not
// rewritten; they keep their denormalized texts.
func (s *Service) UpdateLibraryEntry(ctx context.Context, actor common.Actor, id string, input *api.LibraryInput) (*model.HazardLibrary, error) {
	if input == nil {
		return nil, validationError("library payload is required")
	}
	if err := validator.Struct(input); err != nil {
		return nil, validationError("%s", err.Error())
	}

	var updated *model.HazardLibrary
	err := s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entity, err := s.logic.libraryDAO.GetByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("library entry")
			}
			return err
		}
		if input.Type != entity.Type || input.Title != entity.Title {
			other, err := s.logic.libraryDAO.FindByTypeTitle(ctx, tx, input.Type, input.Title)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if other != nil && other.ID != entity.ID {
				return duplicateKeyError("library entry %q already exists for type %s", input.Title, input.Type)
			}
		}

		before := *entity
		entity.Type = input.Type
		entity.Title = input.Title
		entity.Hazard = input.Hazard
		entity.HazardousEvent = input.HazardousEvent
		entity.PotentialDamage = input.PotentialDamage
		entity.AllowsQuantitative = input.AllowsQuantitative
		if input.Active != nil {
			entity.Active = *input.Active
		}
		if err := s.logic.libraryDAO.Save(ctx, tx, entity); err != nil {
			return err
		}
		updated = entity
		return s.recordAudit(ctx, tx, EntityLibrary, entity.ID, model.AuditActionUpdate, actor, &before, entity)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeactivateLibraryEntry retires an entry from selection. Existing hazards
// stay linked; deactivation only blocks new references.
func (s *Service) DeactivateLibraryEntry(ctx context.Context, actor common.Actor, id string) error {
	return s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entity, err := s.logic.libraryDAO.GetByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("library entry")
			}
			return err
		}
		if !entity.Active {
			return nil
		}
		before := *entity
		entity.Active = false
		if err := s.logic.libraryDAO.Save(ctx, tx, entity); err != nil {
			return err
		}
		return s.recordAudit(ctx, tx, EntityLibrary, entity.ID, model.AuditActionUpdate, actor, &before, entity)
	})
}

// GetLibraryEntry returns one catalog entry.
func (s *Service) GetLibraryEntry(ctx context.Context, id string) (*model.HazardLibrary, error) {
	entity, err := s.logic.libraryDAO.GetByID(ctx, s.logic.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("library entry")
		}
		return nil, err
	}
	return entity, nil
}

// ListLibraryEntries lists catalog entries, optionally filtered by agent type
// and active flag.
func (s *Service) ListLibraryEntries(ctx context.Context, typ string, active *bool) ([]model.HazardLibrary, error) {
	if !validator.OneOf(typ, true,
		model.AgentPhysical, model.AgentChemical, model.AgentBiological,
		model.AgentErgonomic, model.AgentAccident, model.AgentPsychosocial) {
		return nil, validationError("unknown agent type %q", typ)
	}
	return s.logic.libraryDAO.List(ctx, s.logic.db, typ, active)
}
