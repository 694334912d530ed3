package model

import "time"

// Reference is the configured exposure reference for one measurement type.
// One active reference per type; measurements of a type without an active
// reference degrade to the no_reference comparison outcome.
type Reference struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id,omitempty"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
	UpdatedAt        time.Time `json:"updated_at,omitempty"`
	MeasurementType  string    `gorm:"column:measurement_type;uniqueIndex:uk_reference_type" json:"measurementType,omitempty"`
	ReferenceValue   float64   `gorm:"column:reference_value" json:"referenceValue"`
	Unit             string    `gorm:"column:unit" json:"unit,omitempty"`
	ProximityPercent float64   `gorm:"column:proximity_percent" json:"proximityPercent"`
	Active           bool      `gorm:"column:active;default:true" json:"active,omitempty"`
}

func (Reference) TableName() string {
	return "survey_reference"
}

// ClassificationRange maps a score interval onto a classification label.
// Ranges are evaluated in position order, first match wins.
type ClassificationRange struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
	Label     string    `gorm:"column:label" json:"label,omitempty"`
	MinScore  int       `gorm:"column:min_score" json:"minScore"`
	MaxScore  int       `gorm:"column:max_score" json:"maxScore"`
	Position  int       `gorm:"column:position" json:"position"`
	Active    bool      `gorm:"column:active;default:true" json:"active,omitempty"`
}

func (ClassificationRange) TableName() string {
	return "survey_classification_range"
}
