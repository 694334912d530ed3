package model

import (
	"database/sql/driver"
	"time"
)

// Comparison outcomes for a quantitative measurement against its configured
// reference. Three tiers on purpose: near_limit flags values approaching the
// limit before they cross it.
const (
	ComparisonBelowReference = "below_reference"
	ComparisonNearLimit      = "near_limit"
	ComparisonAboveReference = "above_reference"
	ComparisonNoReference    = "no_reference"
)

// AppliedReference is the reference configuration captured at measurement
// time. Zeroed when no active reference exists for the measurement type.
type AppliedReference struct {
	Limit            float64 `json:"value"`
	Unit             string  `json:"unit"`
	ProximityPercent float64 `json:"proximityPercent"`
}

func (r AppliedReference) Value() (driver.Value, error) { return jsonValue(r) }
func (r *AppliedReference) Scan(src any) error          { return jsonScan(r, src) }

// Measurement is an instrument-based quantitative reading for a Hazard.
type Measurement struct {
	ID                string           `gorm:"primaryKey;size:36" json:"id,omitempty"`
	CreatedAt         time.Time        `json:"created_at,omitempty"`
	UpdatedAt         time.Time        `json:"updated_at,omitempty"`
	HazardID          string           `gorm:"column:hazard_id;size:36;index" json:"hazardId,omitempty"`
	EnvironmentID     string           `gorm:"column:environment_id;size:36;index" json:"environmentId,omitempty"`
	DeviceID          string           `gorm:"column:device_id;size:36" json:"deviceId,omitempty"`
	MeasurementType   string           `gorm:"column:measurement_type;index" json:"measurementType,omitempty"`
	MeasuredValue     float64          `gorm:"column:measured_value" json:"measuredValue"`
	Unit              string           `gorm:"column:unit" json:"unit,omitempty"`
	ExposureTime      string           `gorm:"column:exposure_time" json:"exposureTime,omitempty"`
	ObservationMethod string           `gorm:"column:observation_method" json:"observationMethod,omitempty"`
	InstrumentUsed    string           `gorm:"column:instrument_used" json:"instrumentUsed,omitempty"`
	MeasurementDate   time.Time        `gorm:"column:measurement_date" json:"measurementDate,omitempty"`
	Comparison        string           `gorm:"column:comparison;index" json:"comparison,omitempty"`
	AppliedReference  AppliedReference `gorm:"column:applied_reference;type:text" json:"appliedReference"`
}

func (Measurement) TableName() string {
	return "survey_measurement"
}
