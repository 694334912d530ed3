package model

import "time"

// Activity frequency values.
const (
	FrequencyContinuous   = "continuous"
	FrequencyDaily        = "daily"
	FrequencyWeekly       = "weekly"
	FrequencyMonthly      = "monthly"
	FrequencyOccasional   = "occasional"
	FrequencyIntermittent = "intermittent"
)

// Activity is a concrete task performed by a JobRole within an Environment.
// The referenced JobRole must belong to the same Environment.
type Activity struct {
	ID                 string     `gorm:"primaryKey;size:36" json:"id,omitempty"`
	CreatedAt          time.Time  `json:"created_at,omitempty"`
	UpdatedAt          time.Time  `json:"updated_at,omitempty"`
	EnvironmentID      string     `gorm:"column:environment_id;size:36;index" json:"environmentId,omitempty"`
	JobRoleID          string     `gorm:"column:job_role_id;size:36;index" json:"jobRoleId,omitempty"`
	CompanyID          string     `gorm:"column:company_id;size:36" json:"companyId,omitempty"`
	Name               string     `gorm:"column:name" json:"name,omitempty"`
	TaskDescription    string     `gorm:"column:task_description;type:text" json:"taskDescription,omitempty"`
	Frequency          string     `gorm:"column:frequency" json:"frequency,omitempty"`
	WorkerCount        int        `gorm:"column:worker_count" json:"workerCount,omitempty"`
	IsolatedWork       bool       `gorm:"column:isolated_work" json:"isolatedWork,omitempty"`
	ThirdPartyInvolved bool       `gorm:"column:third_party_involved" json:"thirdPartyInvolved,omitempty"`
	ToolsUsed          StringList `gorm:"column:tools_used;type:text" json:"toolsUsed,omitempty"`
	MaterialsUsed      StringList `gorm:"column:materials_used;type:text" json:"materialsUsed,omitempty"`
	Attachments        StringList `gorm:"column:attachments;type:text" json:"attachments,omitempty"`
}

func (Activity) TableName() string {
	return "survey_activity"
}
