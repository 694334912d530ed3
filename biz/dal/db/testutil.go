package db

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/vivasst/risk_survey/biz/dal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Reduce log noise in tests
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Auto migrate all tables
	if err := db.AutoMigrate(
		&model.Environment{},
		&model.JobRole{},
		&model.Activity{},
		&model.Hazard{},
		&model.Assessment{},
		&model.Measurement{},
		&model.HazardLibrary{},
		&model.MeasurementDevice{},
		&model.Reference{},
		&model.ClassificationRange{},
		&model.AuditRecord{},
		&model.Snapshot{},
	); err != nil {
		t.Fatalf("Failed to migrate tables: %v", err)
	}

	return db
}

// CleanupTestDB closes the database connection
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Logf("Warning: Failed to get underlying DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Logf("Warning: Failed to close DB: %v", err)
	}
}

// CreateTestEnvironment creates a draft environment with default values
func CreateTestEnvironment(t *testing.T, db *gorm.DB, id, companyID string) *model.Environment {
	t.Helper()
	dao := NewEnvironmentDAO()
	env := &model.Environment{
		ID:           id,
		CompanyID:    companyID,
		Unit:         "Unidade 1",
		Sector:       "Producao",
		Name:         "Galpao " + id,
		Type:         model.EnvTypeShed,
		SurveyStatus: model.SurveyStatusDraft,
	}
	if err := dao.Create(context.Background(), db, env); err != nil {
		t.Fatalf("Failed to create test environment: %v", err)
	}
	return env
}

// CreateTestJobRole creates a job role under an environment
func CreateTestJobRole(t *testing.T, db *gorm.DB, id string, env *model.Environment, name string) *model.JobRole {
	t.Helper()
	dao := NewJobRoleDAO()
	role := &model.JobRole{
		ID:            id,
		EnvironmentID: env.ID,
		CompanyID:     env.CompanyID,
		Unit:          env.Unit,
		Sector:        env.Sector,
		Name:          name,
		Active:        true,
	}
	if err := dao.Create(context.Background(), db, role); err != nil {
		t.Fatalf("Failed to create test job role: %v", err)
	}
	return role
}

// CreateTestActivity creates an activity under a role
func CreateTestActivity(t *testing.T, db *gorm.DB, id string, env *model.Environment, role *model.JobRole, name string) *model.Activity {
	t.Helper()
	dao := NewActivityDAO()
	act := &model.Activity{
		ID:            id,
		EnvironmentID: env.ID,
		JobRoleID:     role.ID,
		CompanyID:     env.CompanyID,
		Name:          name,
		Frequency:     model.FrequencyDaily,
		WorkerCount:   2,
	}
	if err := dao.Create(context.Background(), db, act); err != nil {
		t.Fatalf("Failed to create test activity: %v", err)
	}
	return act
}

// CreateTestHazard creates a hazard under an activity
func CreateTestHazard(t *testing.T, db *gorm.DB, id string, env *model.Environment, act *model.Activity, libraryID string) *model.Hazard {
	t.Helper()
	dao := NewHazardDAO()
	hz := &model.Hazard{
		ID:            id,
		ActivityID:    act.ID,
		EnvironmentID: env.ID,
		CompanyID:     env.CompanyID,
		RiskLibraryID: libraryID,
		AgentCategory: model.AgentPhysical,
		Description:   "Ruido continuo",
		Condition:     model.ConditionNormal,
	}
	if err := dao.Create(context.Background(), db, hz); err != nil {
		t.Fatalf("Failed to create test hazard: %v", err)
	}
	return hz
}
