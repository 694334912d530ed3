package db

import (
	"context"
	"errors"

	"github.com/vivasst/risk_survey/biz/dal/model"
	"gorm.io/gorm"
)

// AuditDAO appends and reads audit records. There is deliberately no update
// or delete path: the trail is append-only.
type AuditDAO struct{}

func NewAuditDAO() *AuditDAO { return &AuditDAO{} }

func (dao *AuditDAO) Append(ctx context.Context, db *gorm.DB, entity *model.AuditRecord) error {
	if entity == nil {
		return errors.New("audit record must not be nil")
	}
	return db.WithContext(ctx).Create(entity).Error
}

// List returns records filtered by entity type/id, most recent first, capped
// at limit rows.
func (dao *AuditDAO) List(ctx context.Context, db *gorm.DB, entityType, entityID string, limit int) ([]model.AuditRecord, error) {
	tx := db.WithContext(ctx)
	if entityType != "" {
		tx = tx.Where("entity_type = ?", entityType)
	}
	if entityID != "" {
		tx = tx.Where("entity_id = ?", entityID)
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var entities []model.AuditRecord
	if err := tx.Order("created_at DESC").Limit(limit).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}
