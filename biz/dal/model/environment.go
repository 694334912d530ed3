package model

import (
	"database/sql/driver"
	"time"
)

// Survey status values for Environment. The transition draft -> finalized is
// terminal: once finalized, no entity in the environment subtree may change.
const (
	SurveyStatusDraft     = "draft"
	SurveyStatusFinalized = "finalized"
)

// Environment type values.
const (
	EnvTypeOpenArea      = "open_area"
	EnvTypeShed          = "shed"
	EnvTypeTechnicalRoom = "technical_room"
	EnvTypeLab           = "lab"
	EnvTypeField         = "field"
	EnvTypeOther         = "other"
)

// PhysicalConditions captures the observed physical state of a workplace area.
type PhysicalConditions struct {
	Ventilation          string `json:"ventilation,omitempty"`
	Lighting             string `json:"lighting,omitempty"`
	PerceivedTemperature string `json:"perceivedTemperature,omitempty"`
	NoisePerceptible     bool   `json:"noisePerceptible,omitempty"`
	DustVisible          bool   `json:"dustVisible,omitempty"`
	ExcessiveHumidity    bool   `json:"excessiveHumidity,omitempty"`
	FloorType            string `json:"floorType,omitempty"`
	UnevenFloor          bool   `json:"unevenFloor,omitempty"`
}

func (p PhysicalConditions) Value() (driver.Value, error) { return jsonValue(p) }
func (p *PhysicalConditions) Scan(src any) error          { return jsonScan(p, src) }

// SafetyInfrastructure records the safety equipment present in the area.
type SafetyInfrastructure struct {
	FireExtinguishers bool `json:"fireExtinguishers,omitempty"`
	EmergencyExits    bool `json:"emergencyExits,omitempty"`
	EmergencyLighting bool `json:"emergencyLighting,omitempty"`
	FirstAidKit       bool `json:"firstAidKit,omitempty"`
	SafetySignage     bool `json:"safetySignage,omitempty"`
	EyewashStation    bool `json:"eyewashStation,omitempty"`
}

func (s SafetyInfrastructure) Value() (driver.Value, error) { return jsonValue(s) }
func (s *SafetyInfrastructure) Scan(src any) error          { return jsonScan(s, src) }

// StructuralElements records structural features relevant to the survey.
type StructuralElements struct {
	Mezzanine     bool `json:"mezzanine,omitempty"`
	ConfinedSpace bool `json:"confinedSpace,omitempty"`
	WorkAtHeight  bool `json:"workAtHeight,omitempty"`
	Underground   bool `json:"underground,omitempty"`
	ExternalArea  bool `json:"externalArea,omitempty"`
}

func (s StructuralElements) Value() (driver.Value, error) { return jsonValue(s) }
func (s *StructuralElements) Scan(src any) error          { return jsonScan(s, src) }

// Environment is the root of the survey hierarchy and the unit of
// finalization. It owns the editability gate for its whole subtree.
type Environment struct {
	ID                   string               `gorm:"primaryKey;size:36" json:"id,omitempty"`
	CreatedAt            time.Time            `json:"created_at,omitempty"`
	UpdatedAt            time.Time            `json:"updated_at,omitempty"`
	CompanyID            string               `gorm:"column:company_id;size:36;index:idx_environment_company" json:"companyId,omitempty"`
	Unit                 string               `gorm:"column:unit" json:"unit,omitempty"`
	Sector               string               `gorm:"column:sector" json:"sector,omitempty"`
	Name                 string               `gorm:"column:name" json:"name,omitempty"`
	Type                 string               `gorm:"column:type" json:"type,omitempty"`
	ApproxAreaM2         *float64             `gorm:"column:approx_area_m2" json:"approxAreaM2,omitempty"`
	ApproxCeilingHeight  *float64             `gorm:"column:approx_ceiling_height" json:"approxCeilingHeight,omitempty"`
	PhysicalConditions   PhysicalConditions   `gorm:"column:physical_conditions;type:text" json:"physicalConditions"`
	SafetyInfrastructure SafetyInfrastructure `gorm:"column:safety_infrastructure;type:text" json:"safetyInfrastructure"`
	StructuralElements   StructuralElements   `gorm:"column:structural_elements;type:text" json:"structuralElements"`
	Attachments          StringList           `gorm:"column:attachments;type:text" json:"attachments,omitempty"`
	SurveyStatus         string               `gorm:"column:survey_status;default:draft;index" json:"surveyStatus,omitempty"`
	FinalizedAt          *time.Time           `gorm:"column:finalized_at" json:"finalizedAt,omitempty"`
	FinalizedBy          string               `gorm:"column:finalized_by;size:36" json:"finalizedBy,omitempty"`
}

// TableName overrides gorm to use the survey_environment table.
func (Environment) TableName() string {
	return "survey_environment"
}

// IsFinalized reports whether the environment subtree is frozen.
func (e *Environment) IsFinalized() bool {
	return e != nil && e.SurveyStatus == SurveyStatusFinalized
}
