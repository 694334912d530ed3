package db

import (
	"context"
	"errors"

	"github.com/vivasst/risk_survey/biz/dal/model"
	"gorm.io/gorm"
)

// HazardLibraryDAO wraps persistence for the reusable hazard catalog.
type HazardLibraryDAO struct{}

func NewHazardLibraryDAO() *HazardLibraryDAO { return &HazardLibraryDAO{} }

func (dao *HazardLibraryDAO) Create(ctx context.Context, db *gorm.DB, entity *model.HazardLibrary) error {
	if entity == nil {
		return errors.New("library entry must not be nil")
	}
	return db.WithContext(ctx).Create(entity).Error
}

func (dao *HazardLibraryDAO) Save(ctx context.Context, db *gorm.DB, entity *model.HazardLibrary) error {
	if entity == nil {
		return errors.New("library entry must not be nil")
	}
	return db.WithContext(ctx).Save(entity).Error
}

func (dao *HazardLibraryDAO) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&model.HazardLibrary{}).Error
}

func (dao *HazardLibraryDAO) GetByID(ctx context.Context, db *gorm.DB, id string) (*model.HazardLibrary, error) {
	var entity model.HazardLibrary
	if err := db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// FindByTypeTitle locates an entry by its unique (type, title) key.
func (dao *HazardLibraryDAO) FindByTypeTitle(ctx context.Context, db *gorm.DB, typ, title string) (*model.HazardLibrary, error) {
	var entity model.HazardLibrary
	err := db.WithContext(ctx).
		Where("type = ? AND title = ?", typ, title).
		First(&entity).Error
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// FindByIdentity locates an entry by the derived identity used during legacy
// migration: normalized agent type plus hazard and hazardous event texts.
func (dao *HazardLibraryDAO) FindByIdentity(ctx context.Context, db *gorm.DB, typ, hazard, hazardousEvent string) (*model.HazardLibrary, error) {
	var entity model.HazardLibrary
	err := db.WithContext(ctx).
		Where("type = ? AND hazard = ? AND hazardous_event = ?", typ, hazard, hazardousEvent).
		First(&entity).Error
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (dao *HazardLibraryDAO) List(ctx context.Context, db *gorm.DB, typ string, active *bool) ([]model.HazardLibrary, error) {
	tx := db.WithContext(ctx)
	if typ != "" {
		tx = tx.Where("type = ?", typ)
	}
	if active != nil {
		tx = tx.Where("active = ?", *active)
	}

	var entities []model.HazardLibrary
	if err := tx.Order("type ASC, title ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (dao *HazardLibraryDAO) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.HazardLibrary{}).Count(&count).Error
	return count, err
}
