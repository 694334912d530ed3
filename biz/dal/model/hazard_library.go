package model

import "time"

// HazardLibrary entry origin values.
const (
	LibraryOriginLibrary = "library"
	LibraryOriginCustom  = "custom"
)

// HazardLibrary is a reusable catalog entry describing a hazard definition.
// Entries are unique per (type, title); only entries with AllowsQuantitative
// may receive quantitative measurements.
type HazardLibrary struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id,omitempty"`
	CreatedAt          time.Time `json:"created_at,omitempty"`
	UpdatedAt          time.Time `json:"updated_at,omitempty"`
	Type               string    `gorm:"column:type;uniqueIndex:uk_library_type_title" json:"type,omitempty"`
	Title              string    `gorm:"column:title;uniqueIndex:uk_library_type_title" json:"title,omitempty"`
	Hazard             string    `gorm:"column:hazard;type:text" json:"hazard,omitempty"`
	HazardousEvent     string    `gorm:"column:hazardous_event;type:text" json:"hazardousEvent,omitempty"`
	PotentialDamage    string    `gorm:"column:potential_damage;type:text" json:"potentialDamage,omitempty"`
	AllowsQuantitative bool      `gorm:"column:allows_quantitative" json:"allowsQuantitative,omitempty"`
	Origin             string    `gorm:"column:origin;default:library" json:"origin,omitempty"`
	Active             bool      `gorm:"column:active;default:true" json:"active,omitempty"`
}

func (HazardLibrary) TableName() string {
	return "survey_hazard_library"
}
