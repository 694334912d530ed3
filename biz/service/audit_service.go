package service

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/google/uuid"
	"github.com/vivasst/risk_survey/biz/dal/model"
	"github.com/vivasst/risk_survey/pkg/common"
	"gorm.io/gorm"
)

// Entity type tags used in the audit trail.
const (
	EntityEnvironment = "environment"
	EntityJobRole     = "job_role"
	EntityActivity    = "activity"
	EntityHazard      = "hazard"
	EntityAssessment  = "assessment"
	EntityMeasurement = "measurement"
	EntityLibrary     = "hazard_library"
	EntityDevice      = "measurement_device"
	EntityReference   = "reference"
	EntityMigration   = "risk_migration"
)

// entitySnapshot flattens an entity into the JSON shape stored in audit
// records. Diffing happens on the serialized form so field names match the
// API surface.
func entitySnapshot(v any) model.JSONMap {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var snap model.JSONMap
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil
	}
	return snap
}

// diffSnapshots computes a shallow field-level diff over the union of keys.
// Returns nil when nothing differs, {created: after} for creations and
// {removed: before} for deletions.
func diffSnapshots(before, after model.JSONMap) model.JSONMap {
	switch {
	case before == nil && after == nil:
		return nil
	case before == nil:
		return model.JSONMap{"created": map[string]any(after)}
	case after == nil:
		return model.JSONMap{"removed": map[string]any(before)}
	}

	changes := model.JSONMap{}
	keys := make(map[string]struct{}, len(before)+len(after))
	for k := range before {
		keys[k] = struct{}{}
	}
	for k := range after {
		keys[k] = struct{}{}
	}
	for k := range keys {
		// timestamps churn on every save and carry no audit value
		if k == "updated_at" || k == "created_at" {
			continue
		}
		b, a := before[k], after[k]
		if !reflect.DeepEqual(b, a) {
			changes[k] = map[string]any{"before": b, "after": a}
		}
	}
	if len(changes) == 0 {
		return nil
	}
	return changes
}

// recordAudit appends one immutable audit row inside the caller's
// transaction. Every mutating path in the hierarchy funnels through here.
func (s *Service) recordAudit(ctx context.Context, tx *gorm.DB, entityType, entityID, action string, actor common.Actor, before, after any) error {
	beforeSnap := entitySnapshot(before)
	afterSnap := entitySnapshot(after)
	record := &model.AuditRecord{
		ID:         uuid.New().String(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		ActorEmail: actor.Email,
		ActorRole:  actor.Role,
		Before:     beforeSnap,
		After:      afterSnap,
		Changes:    diffSnapshots(beforeSnap, afterSnap),
	}
	return s.logic.auditDAO.Append(ctx, tx, record)
}

// ListAudit returns the most recent audit records, optionally filtered by
// entity type and id.
func (s *Service) ListAudit(ctx context.Context, entityType, entityID string, limit int) ([]model.AuditRecord, error) {
	return s.logic.auditDAO.List(ctx, s.logic.db, entityType, entityID, limit)
}
