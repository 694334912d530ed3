package db

import (
	"context"
	"errors"

	"github.com/vivasst/risk_survey/biz/dal/model"
	"gorm.io/gorm"
)

// EnvironmentDAO wraps persistence for survey environments.
type EnvironmentDAO struct{}

func NewEnvironmentDAO() *EnvironmentDAO { return &EnvironmentDAO{} }

// Create persists a new environment.
func (dao *EnvironmentDAO) Create(ctx context.Context, db *gorm.DB, entity *model.Environment) error {
	if entity == nil {
		return errors.New("environment must not be nil")
	}
	return db.WithContext(ctx).Create(entity).Error
}

// Save overwrites all columns of an existing environment.
func (dao *EnvironmentDAO) Save(ctx context.Context, db *gorm.DB, entity *model.Environment) error {
	if entity == nil {
		return errors.New("environment must not be nil")
	}
	return db.WithContext(ctx).Save(entity).Error
}

// Delete removes an environment row. Dependent checks happen in the service.
func (dao *EnvironmentDAO) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&model.Environment{}).Error
}

// GetByID fetches a single environment.
func (dao *EnvironmentDAO) GetByID(ctx context.Context, db *gorm.DB, id string) (*model.Environment, error) {
	var entity model.Environment
	if err := db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// List returns environments for a company with an optional status filter.
func (dao *EnvironmentDAO) List(ctx context.Context, db *gorm.DB, companyID string, status string) ([]model.Environment, error) {
	tx := db.WithContext(ctx)
	if companyID != "" {
		tx = tx.Where("company_id = ?", companyID)
	}
	if status != "" {
		tx = tx.Where("survey_status = ?", status)
	}

	var entities []model.Environment
	if err := tx.Order("created_at ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// FindByIdentity locates an environment by its natural migration key.
func (dao *EnvironmentDAO) FindByIdentity(ctx context.Context, db *gorm.DB, companyID, unit, sector, name string) (*model.Environment, error) {
	var entity model.Environment
	err := db.WithContext(ctx).
		Where("company_id = ? AND unit = ? AND sector = ? AND name = ?", companyID, unit, sector, name).
		First(&entity).Error
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// MarkFinalized flips survey_status from draft to finalized in one conditional
// update. Returns false when the row was already finalized (or missing), which
// resolves the race between two concurrent finalize calls.
func (dao *EnvironmentDAO) MarkFinalized(ctx context.Context, db *gorm.DB, entity *model.Environment) (bool, error) {
	if entity == nil {
		return false, errors.New("environment must not be nil")
	}
	result := db.WithContext(ctx).
		Model(&model.Environment{}).
		Where("id = ? AND survey_status = ?", entity.ID, model.SurveyStatusDraft).
		Updates(map[string]any{
			"survey_status": model.SurveyStatusFinalized,
			"finalized_at":  entity.FinalizedAt,
			"finalized_by":  entity.FinalizedBy,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
