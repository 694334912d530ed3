package model

import "time"

// Agent category values. The legacy API exposed the same value under both
// riskType and categoriaAgente; internally a single column is stored and the
// API layer emits both names.
const (
	AgentPhysical     = "physical"
	AgentChemical     = "chemical"
	AgentBiological   = "biological"
	AgentErgonomic    = "ergonomic"
	AgentAccident     = "accident"
	AgentPsychosocial = "psychosocial"
)

// Hazard exposure condition values.
const (
	ConditionNormal    = "normal"
	ConditionAbnormal  = "abnormal"
	ConditionEmergency = "emergency"
)

// Hazard (risco) is a specific danger identified for an Activity. Environment
// and company ids are denormalized from the parent chain. Unit, Sector and
// RoleName are only populated on rows created under the flat legacy schema and
// drive the legacy migration job.
type Hazard struct {
	ID               string     `gorm:"primaryKey;size:36" json:"id,omitempty"`
	CreatedAt        time.Time  `json:"created_at,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at,omitempty"`
	ActivityID       string     `gorm:"column:activity_id;size:36;index" json:"activityId,omitempty"`
	EnvironmentID    string     `gorm:"column:environment_id;size:36;index" json:"environmentId,omitempty"`
	CompanyID        string     `gorm:"column:company_id;size:36;index" json:"companyId,omitempty"`
	RiskLibraryID    string     `gorm:"column:risk_library_id;size:36" json:"riskLibraryId,omitempty"`
	AgentCategory    string     `gorm:"column:agent_category;index" json:"riskType,omitempty"`
	Description      string     `gorm:"column:description;type:text" json:"description,omitempty"`
	HazardousEvent   string     `gorm:"column:hazardous_event;type:text" json:"hazardousEvent,omitempty"`
	PotentialDamage  string     `gorm:"column:potential_damage;type:text" json:"potentialDamage,omitempty"`
	Condition        string     `gorm:"column:exposure_condition" json:"condition,omitempty"`
	ExposedWorkers   int        `gorm:"column:exposed_workers" json:"exposedWorkers,omitempty"`
	HomogeneousGroup bool       `gorm:"column:homogeneous_group" json:"homogeneousGroup,omitempty"`
	ExistingControls string     `gorm:"column:existing_controls;type:text" json:"controlesExistentes,omitempty"`
	Attachments      StringList `gorm:"column:attachments;type:text" json:"attachments,omitempty"`
	LegacyMigrated   bool       `gorm:"column:legacy_migrated" json:"legacyMigrated,omitempty"`
	IsCustomRisk     bool       `gorm:"column:is_custom_risk" json:"isCustomRisk,omitempty"`

	// Legacy flat-schema columns, consumed by the migration job.
	Unit     string `gorm:"column:unit" json:"unit,omitempty"`
	Sector   string `gorm:"column:sector" json:"sector,omitempty"`
	RoleName string `gorm:"column:role_name" json:"roleName,omitempty"`
}

func (Hazard) TableName() string {
	return "survey_hazard"
}
