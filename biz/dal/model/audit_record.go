package model

import "time"

// Audit action values.
const (
	AuditActionCreate   = "create"
	AuditActionUpdate   = "update"
	AuditActionDelete   = "delete"
	AuditActionFinalize = "finalize"
	AuditActionExecute  = "execute"
	AuditActionUpsert   = "upsert"
)

// AuditRecord is one append-only entry in the mutation trail. Changes holds a
// field-level diff between Before and After, {created: after} for pure
// creations, {removed: before} for deletions, and is null when nothing
// actually changed.
type AuditRecord struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id,omitempty"`
	CreatedAt  time.Time `gorm:"index" json:"created_at,omitempty"`
	EntityType string    `gorm:"column:entity_type;index:idx_audit_entity" json:"entityType,omitempty"`
	EntityID   string    `gorm:"column:entity_id;size:36;index:idx_audit_entity" json:"entityId,omitempty"`
	Action     string    `gorm:"column:action" json:"action,omitempty"`
	ActorID    string    `gorm:"column:actor_id;size:36" json:"actorId,omitempty"`
	ActorName  string    `gorm:"column:actor_name" json:"actorName,omitempty"`
	ActorEmail string    `gorm:"column:actor_email" json:"actorEmail,omitempty"`
	ActorRole  string    `gorm:"column:actor_role" json:"actorRole,omitempty"`
	Before     JSONMap   `gorm:"column:before_state;type:text" json:"before,omitempty"`
	After      JSONMap   `gorm:"column:after_state;type:text" json:"after,omitempty"`
	Changes    JSONMap   `gorm:"column:changes;type:text" json:"changes,omitempty"`
}

func (AuditRecord) TableName() string {
	return "survey_audit_record"
}
