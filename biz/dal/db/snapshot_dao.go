package db

import (
	"context"
	"errors"

	"github.com/vivasst/risk_survey/biz/dal/model"
	"gorm.io/gorm"
)

// SnapshotDAO persists finalize-time captures of environment subtrees.
// Snapshots are written once and never mutated.
type SnapshotDAO struct{}

func NewSnapshotDAO() *SnapshotDAO { return &SnapshotDAO{} }

func (dao *SnapshotDAO) Create(ctx context.Context, db *gorm.DB, entity *model.Snapshot) error {
	if entity == nil {
		return errors.New("snapshot must not be nil")
	}
	return db.WithContext(ctx).Create(entity).Error
}

// LatestByEnvironment returns the most recently created snapshot for an
// environment.
func (dao *SnapshotDAO) LatestByEnvironment(ctx context.Context, db *gorm.DB, environmentID string) (*model.Snapshot, error) {
	var entity model.Snapshot
	err := db.WithContext(ctx).
		Where("environment_id = ?", environmentID).
		Order("created_at DESC").
		First(&entity).Error
	if err != nil {
		return nil, err
	}
	return &entity, nil
}
