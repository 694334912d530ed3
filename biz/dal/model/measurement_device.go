package model

import "time"

// MeasurementDevice is a calibrated instrument registered for quantitative
// measurements. SerialNumber is globally unique.
type MeasurementDevice struct {
	ID                  string     `gorm:"primaryKey;size:36" json:"id,omitempty"`
	CreatedAt           time.Time  `json:"created_at,omitempty"`
	UpdatedAt           time.Time  `json:"updated_at,omitempty"`
	SerialNumber        string     `gorm:"column:serial_number;uniqueIndex:uk_device_serial" json:"serialNumber,omitempty"`
	Brand               string     `gorm:"column:brand" json:"brand,omitempty"`
	Model               string     `gorm:"column:model" json:"model,omitempty"`
	LastCalibrationDate *time.Time `gorm:"column:last_calibration_date" json:"lastCalibrationDate,omitempty"`
	Note                string     `gorm:"column:note;type:varchar(512)" json:"note,omitempty"`
	Active              bool       `gorm:"column:active;default:true" json:"active,omitempty"`
}

func (MeasurementDevice) TableName() string {
	return "survey_measurement_device"
}

// Label returns the human readable instrument string denormalized onto
// measurements ("brand model (serial)").
func (d *MeasurementDevice) Label() string {
	if d == nil {
		return ""
	}
	label := d.Brand
	if d.Model != "" {
		if label != "" {
			label += " "
		}
		label += d.Model
	}
	if d.SerialNumber != "" {
		if label != "" {
			label += " "
		}
		label += "(" + d.SerialNumber + ")"
	}
	return label
}
