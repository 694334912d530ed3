package model

import "time"

// Classification labels, ordered from least to most severe. Classification is
// derived from score via the configured range table; when no range matches the
// engine fails toward the most severe bucket.
const (
	ClassificationBaixo   = "baixo"
	ClassificationMedio   = "medio"
	ClassificationAlto    = "alto"
	ClassificationCritico = "critico"
)

// Confidence level values for qualitative assessments.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Assessment is the qualitative probability x severity evaluation of a Hazard.
// Exactly one assessment exists per hazard; repeated upserts update in place.
type Assessment struct {
	ID                     string    `gorm:"primaryKey;size:36" json:"id,omitempty"`
	CreatedAt              time.Time `json:"created_at,omitempty"`
	UpdatedAt              time.Time `json:"updated_at,omitempty"`
	HazardID               string    `gorm:"column:hazard_id;size:36;uniqueIndex:uk_assessment_hazard" json:"hazardId,omitempty"`
	EnvironmentID          string    `gorm:"column:environment_id;size:36;index" json:"environmentId,omitempty"`
	ActivityID             string    `gorm:"column:activity_id;size:36" json:"activityId,omitempty"`
	Probability            int       `gorm:"column:probability" json:"probability,omitempty"`
	Severity               int       `gorm:"column:severity" json:"severity,omitempty"`
	Score                  int       `gorm:"column:score" json:"score,omitempty"`
	Classification         string    `gorm:"column:classification;index" json:"classification,omitempty"`
	TechnicalJustification string    `gorm:"column:technical_justification;type:text" json:"technicalJustification,omitempty"`
	ConfidenceLevel        string    `gorm:"column:confidence_level" json:"confidenceLevel,omitempty"`
}

func (Assessment) TableName() string {
	return "survey_assessment"
}
