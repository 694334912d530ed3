package model

import "time"

// Snapshot is the denormalized, immutable capture of a finalized Environment
// subtree. Payload is stored as serialized JSON so repeated reads return the
// exact bytes written at finalize time.
type Snapshot struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id,omitempty"`
	CreatedAt     time.Time `gorm:"index" json:"created_at,omitempty"`
	EnvironmentID string    `gorm:"column:environment_id;size:36;index" json:"environmentId,omitempty"`
	FinalizedAt   time.Time `gorm:"column:finalized_at" json:"finalizedAt,omitempty"`
	FinalizedBy   string    `gorm:"column:finalized_by;size:36" json:"finalizedBy,omitempty"`
	Payload       string    `gorm:"column:payload;type:text" json:"payload,omitempty"`
}

func (Snapshot) TableName() string {
	return "survey_snapshot"
}
