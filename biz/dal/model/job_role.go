package model

import "time"

// JobRole (cargo) is a function performed within exactly one Environment.
// Name is unique per environment.
type JobRole struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
	EnvironmentID string    `gorm:"column:environment_id;size:36;uniqueIndex:uk_job_role_env_name" json:"environmentId,omitempty"`
	CompanyID     string    `gorm:"column:company_id;size:36;index" json:"companyId,omitempty"`
	Unit          string    `gorm:"column:unit" json:"unit,omitempty"`
	Sector        string    `gorm:"column:sector" json:"sector,omitempty"`
	Name          string    `gorm:"column:name;uniqueIndex:uk_job_role_env_name" json:"name,omitempty"`
	Description   string    `gorm:"column:description;type:varchar(512)" json:"description,omitempty"`
	Active        bool      `gorm:"column:active;default:true" json:"active,omitempty"`
}

func (JobRole) TableName() string {
	return "survey_job_role"
}
