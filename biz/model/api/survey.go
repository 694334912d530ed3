// Package api provides API request/response models for the risk survey
// service. Inputs carry validation tags; a single normalization pass in the
// service layer turns them into persisted entities.
package api

import (
	"time"

	"github.com/vivasst/risk_survey/biz/dal/model"
)

// EnvironmentInput is the payload for creating or updating an Environment.
type EnvironmentInput struct {
	CompanyID            string                     `json:"companyId" validate:"required"`
	Unit                 string                     `json:"unit"`
	Sector               string                     `json:"sector"`
	Name                 string                     `json:"name" validate:"required"`
	Type                 string                     `json:"type" validate:"required,oneof=open_area shed technical_room lab field other"`
	ApproxAreaM2         *float64                   `json:"approxAreaM2" validate:"omitempty,gt=0"`
	ApproxCeilingHeight  *float64                   `json:"approxCeilingHeight" validate:"omitempty,gt=0"`
	PhysicalConditions   model.PhysicalConditions   `json:"physicalConditions"`
	SafetyInfrastructure model.SafetyInfrastructure `json:"safetyInfrastructure"`
	StructuralElements   model.StructuralElements   `json:"structuralElements"`
	Attachments          []string                   `json:"attachments"`
}

// JobRoleInput is the payload for creating or updating a JobRole.
type JobRoleInput struct {
	EnvironmentID string `json:"environmentId" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description"`
	Active        *bool  `json:"active"`
}

// ActivityInput is the payload for creating or updating an Activity.
type ActivityInput struct {
	EnvironmentID      string   `json:"environmentId" validate:"required"`
	JobRoleID          string   `json:"jobRoleId" validate:"required"`
	Name               string   `json:"name" validate:"required"`
	TaskDescription    string   `json:"taskDescription"`
	Frequency          string   `json:"frequency" validate:"omitempty,oneof=continuous daily weekly monthly occasional intermittent"`
	WorkerCount        int      `json:"workerCount" validate:"gte=0"`
	IsolatedWork       bool     `json:"isolatedWork"`
	ThirdPartyInvolved bool     `json:"thirdPartyInvolved"`
	ToolsUsed          []string `json:"toolsUsed"`
	MaterialsUsed      []string `json:"materialsUsed"`
	Attachments        []string `json:"attachments"`
}

// HazardInput is the payload for creating or updating a Hazard. The agent
// category binds under either its English or legacy Portuguese name;
// AgentType resolves the pair, English winning when both are sent.
type HazardInput struct {
	ActivityID       string   `json:"activityId" validate:"required"`
	RiskLibraryID    string   `json:"riskLibraryId"`
	AgentCategory    string   `json:"riskType" validate:"omitempty,oneof=physical chemical biological ergonomic accident psychosocial"`
	CategoriaAgente  string   `json:"categoriaAgente" validate:"omitempty,oneof=physical chemical biological ergonomic accident psychosocial"`
	Description      string   `json:"description" validate:"required"`
	HazardousEvent   string   `json:"hazardousEvent"`
	PotentialDamage  string   `json:"potentialDamage"`
	Condition        string   `json:"condition" validate:"omitempty,oneof=normal abnormal emergency"`
	ExposedWorkers   int      `json:"exposedWorkers" validate:"gte=0"`
	HomogeneousGroup bool     `json:"homogeneousGroup"`
	ExistingControls string   `json:"controlesExistentes"`
	Attachments      []string `json:"attachments"`
	IsCustomRisk     bool     `json:"isCustomRisk"`
}

// AgentType returns the bound agent category, preferring riskType over
// categoriaAgente when both carry a value.
func (in *HazardInput) AgentType() string {
	if in.AgentCategory != "" {
		return in.AgentCategory
	}
	return in.CategoriaAgente
}

// AssessmentInput is the payload for the qualitative assessment upsert.
// Probability and severity bounds are re-checked in the engine so that the
// violation maps to the documented error code.
type AssessmentInput struct {
	HazardID               string `json:"hazardId" validate:"required"`
	Probability            int    `json:"probability"`
	Severity               int    `json:"severity"`
	TechnicalJustification string `json:"technicalJustification"`
	ConfidenceLevel        string `json:"confidenceLevel" validate:"omitempty,oneof=high medium low"`
}

// MeasurementInput is the payload for recording or updating a quantitative
// measurement.
type MeasurementInput struct {
	HazardID          string     `json:"hazardId" validate:"required"`
	DeviceID          string     `json:"deviceId" validate:"required"`
	MeasurementType   string     `json:"measurementType" validate:"required"`
	MeasuredValue     float64    `json:"measuredValue"`
	Unit              string     `json:"unit"`
	ExposureTime      string     `json:"exposureTime"`
	ObservationMethod string     `json:"observationMethod"`
	MeasurementDate   *time.Time `json:"measurementDate"`
}

// LibraryInput is the payload for hazard library entries.
type LibraryInput struct {
	Type               string `json:"type" validate:"required,oneof=physical chemical biological ergonomic accident psychosocial"`
	Title              string `json:"title" validate:"required"`
	Hazard             string `json:"hazard"`
	HazardousEvent     string `json:"hazardousEvent"`
	PotentialDamage    string `json:"potentialDamage"`
	AllowsQuantitative bool   `json:"allowsQuantitative"`
	Active             *bool  `json:"active"`
}

// DeviceInput is the payload for measurement devices.
type DeviceInput struct {
	SerialNumber        string     `json:"serialNumber" validate:"required"`
	Brand               string     `json:"brand"`
	Model               string     `json:"model"`
	LastCalibrationDate *time.Time `json:"lastCalibrationDate"`
	Note                string     `json:"note"`
	Active              *bool      `json:"active"`
}

// ReferenceInput is the payload for exposure reference configuration.
type ReferenceInput struct {
	MeasurementType  string  `json:"measurementType" validate:"required"`
	ReferenceValue   float64 `json:"referenceValue" validate:"gt=0"`
	Unit             string  `json:"unit" validate:"required"`
	ProximityPercent float64 `json:"proximityPercent" validate:"gte=0,lte=100"`
	Active           *bool   `json:"active"`
}

// HazardView decorates a stored hazard with the legacy dual-name agent field.
// riskType and categoriaAgente always carry the same value.
type HazardView struct {
	model.Hazard
	CategoriaAgente string `json:"categoriaAgente,omitempty"`
}

// NewHazardView builds the response shape for a hazard.
func NewHazardView(h *model.Hazard) *HazardView {
	if h == nil {
		return nil
	}
	return &HazardView{Hazard: *h, CategoriaAgente: h.AgentCategory}
}

// HazardViews converts a slice of hazards.
func HazardViews(items []model.Hazard) []*HazardView {
	list := make([]*HazardView, 0, len(items))
	for i := range items {
		list = append(list, NewHazardView(&items[i]))
	}
	return list
}

// MigrationSummary reports the counters of one legacy migration run.
type MigrationSummary struct {
	MigratedRisks       int `json:"migratedRisks"`
	CreatedEnvironments int `json:"createdEnvironments"`
	CreatedRoles        int `json:"createdRoles"`
	CreatedActivities   int `json:"createdActivities"`
	LinkedLibraries     int `json:"linkedLibraries"`
	LinkedDevices       int `json:"linkedDevices"`
}

// DashboardAggregates is the read-only reporting payload.
type DashboardAggregates struct {
	Environments            map[string]int64 `json:"environments"`
	HazardsByAgentCategory  map[string]int64 `json:"hazardsByAgentCategory"`
	ClassificationHistogram map[string]int64 `json:"classificationHistogram"`
	ComparisonHistogram     map[string]int64 `json:"comparisonHistogram"`
	TotalHazards            int64            `json:"totalHazards"`
	TotalMeasurements       int64            `json:"totalMeasurements"`
}
