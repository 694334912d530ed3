package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vivasst/risk_survey/biz/dal/db"
	"github.com/vivasst/risk_survey/biz/dal/model"
	"gorm.io/gorm"
)

// createLegacyHazard inserts a flat-schema hazard row: no activity, no
// library link, legacy location columns populated.
func createLegacyHazard(t *testing.T, conn *gorm.DB, unit, sector, roleName string) *model.Hazard {
	t.Helper()
	hz := &model.Hazard{
		ID:            uuid.New().String(),
		CompanyID:     "company-1",
		AgentCategory: "físico",
		Description:   "Ruido de prensa",
		Condition:     model.ConditionNormal,
		Unit:          unit,
		Sector:        sector,
		RoleName:      roleName,
	}
	require.NoError(t, conn.Create(hz).Error)
	return hz
}

func TestLegacyMigrationSynthesizesHierarchy(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	hz1 := createLegacyHazard(t, conn, "Unidade 1", "Producao", "Operador")
	hz2 := createLegacyHazard(t, conn, "Unidade 1", "Producao", "Operador")
	hz3 := createLegacyHazard(t, conn, "Unidade 2", "Manutencao", "")

	summary, err := svc.RunLegacyMigration(ctx, testActor())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.MigratedRisks)
	// hz1 and hz2 share unit+sector, hz3 gets its own environment
	assert.Equal(t, 2, summary.CreatedEnvironments)
	assert.Equal(t, 2, summary.CreatedRoles)
	assert.Equal(t, 2, summary.CreatedActivities)
	assert.Equal(t, 3, summary.LinkedLibraries)

	var migrated model.Hazard
	require.NoError(t, conn.First(&migrated, "id = ?", hz1.ID).Error)
	assert.NotEmpty(t, migrated.ActivityID)
	assert.NotEmpty(t, migrated.RiskLibraryID)
	assert.True(t, migrated.LegacyMigrated)
	assert.Equal(t, model.AgentPhysical, migrated.AgentCategory)

	// hz1 and hz2 converge on the same placeholder activity
	var sibling model.Hazard
	require.NoError(t, conn.First(&sibling, "id = ?", hz2.ID).Error)
	assert.Equal(t, migrated.ActivityID, sibling.ActivityID)

	var other model.Hazard
	require.NoError(t, conn.First(&other, "id = ?", hz3.ID).Error)
	assert.NotEqual(t, migrated.EnvironmentID, other.EnvironmentID)

	var env model.Environment
	require.NoError(t, conn.First(&env, "id = ?", migrated.EnvironmentID).Error)
	assert.Equal(t, migratedEnvironmentName, env.Name)
	assert.Equal(t, model.SurveyStatusDraft, env.SurveyStatus)

	var act model.Activity
	require.NoError(t, conn.First(&act, "id = ?", migrated.ActivityID).Error)
	assert.Equal(t, migratedActivityName, act.Name)
}

func TestLegacyMigrationIsIdempotent(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	createLegacyHazard(t, conn, "Unidade 1", "Producao", "Operador")

	first, err := svc.RunLegacyMigration(ctx, testActor())
	require.NoError(t, err)
	require.Equal(t, 1, first.MigratedRisks)

	second, err := svc.RunLegacyMigration(ctx, testActor())
	require.NoError(t, err)
	assert.Zero(t, second.MigratedRisks)
	assert.Zero(t, second.CreatedEnvironments)
	assert.Zero(t, second.CreatedRoles)
	assert.Zero(t, second.CreatedActivities)
	assert.Zero(t, second.LinkedLibraries)
	assert.Zero(t, second.LinkedDevices)
}

func TestLegacyMigrationAttachesPlaceholderDevices(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	hz := createLegacyHazard(t, conn, "Unidade 1", "Producao", "Operador")
	m := &model.Measurement{
		ID:              uuid.New().String(),
		HazardID:        hz.ID,
		MeasurementType: "noise",
		MeasuredValue:   88,
		Comparison:      model.ComparisonNoReference,
	}
	require.NoError(t, conn.Create(m).Error)

	summary, err := svc.RunLegacyMigration(ctx, testActor())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.LinkedDevices)

	var updated model.Measurement
	require.NoError(t, conn.First(&updated, "id = ?", m.ID).Error)
	require.NotEmpty(t, updated.DeviceID)

	var device model.MeasurementDevice
	require.NoError(t, conn.First(&device, "id = ?", updated.DeviceID).Error)
	assert.Equal(t, migratedDevicePrefix+m.ID, device.SerialNumber)
	assert.True(t, device.Active)
}

func TestLegacyMigrationAttachesDevicesToLinkedHazards(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	// fully linked hazard that needs no hierarchy repair
	env, _, act := createHierarchy(t, conn)
	entry := createQuantLibraryEntry(t, conn)
	hz := db.CreateTestHazard(t, conn, uuid.New().String(), env, act, entry.ID)
	m := &model.Measurement{
		ID:              uuid.New().String(),
		HazardID:        hz.ID,
		EnvironmentID:   env.ID,
		MeasurementType: "noise",
		MeasuredValue:   88,
		Comparison:      model.ComparisonNoReference,
	}
	require.NoError(t, conn.Create(m).Error)

	summary, err := svc.RunLegacyMigration(ctx, testActor())
	require.NoError(t, err)
	assert.Zero(t, summary.MigratedRisks)
	assert.Equal(t, 1, summary.LinkedDevices)

	var updated model.Measurement
	require.NoError(t, conn.First(&updated, "id = ?", m.ID).Error)
	require.NotEmpty(t, updated.DeviceID)

	var device model.MeasurementDevice
	require.NoError(t, conn.First(&device, "id = ?", updated.DeviceID).Error)
	assert.Equal(t, migratedDevicePrefix+m.ID, device.SerialNumber)
}

func TestLegacyMigrationLibraryTitleFallback(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	hz := &model.Hazard{
		ID:            uuid.New().String(),
		CompanyID:     "company-1",
		AgentCategory: "físico",
		Condition:     model.ConditionNormal,
		Unit:          "Unidade 1",
		Sector:        "Producao",
	}
	require.NoError(t, conn.Create(hz).Error)

	_, err := svc.RunLegacyMigration(ctx, testActor())
	require.NoError(t, err)

	var migrated model.Hazard
	require.NoError(t, conn.First(&migrated, "id = ?", hz.ID).Error)
	var entry model.HazardLibrary
	require.NoError(t, conn.First(&entry, "id = ?", migrated.RiskLibraryID).Error)
	assert.Equal(t, migratedLibraryTitle, entry.Title)
}

func TestLegacyMigrationNormalizesAgentTypes(t *testing.T) {
	cases := map[string]string{
		"físico":       model.AgentPhysical,
		"Quimico":      model.AgentChemical,
		"biológico":    model.AgentBiological,
		"ergonômico":   model.AgentErgonomic,
		"acidente":     model.AgentAccident,
		"psicossocial": model.AgentPsychosocial,
		"desconhecido": model.AgentPhysical,
		"chemical":     model.AgentChemical,
	}
	for raw, want := range cases {
		assert.Equal(t, want, normalizeAgentType(raw), "raw %q", raw)
	}
}

func TestLegacyMigrationWritesOneSummaryAudit(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	createLegacyHazard(t, conn, "Unidade 1", "Producao", "Operador")
	createLegacyHazard(t, conn, "Unidade 2", "Expedicao", "Conferente")

	_, err := svc.RunLegacyMigration(ctx, testActor())
	require.NoError(t, err)

	records, err := svc.ListAudit(ctx, EntityMigration, "", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.AuditActionExecute, records[0].Action)
}
