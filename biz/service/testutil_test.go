package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/vivasst/risk_survey/biz/dal/db"
	"github.com/vivasst/risk_survey/biz/dal/model"
	"github.com/vivasst/risk_survey/pkg/common"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	conn := db.SetupTestDB(t)
	t.Cleanup(func() { db.CleanupTestDB(t, conn) })
	return NewService(conn), conn
}

func testActor() common.Actor {
	return common.Actor{ID: "tech-1", Name: "Ana Souza", Email: "ana@example.com", Role: "technician"}
}

// createHierarchy seeds environment -> role -> activity and returns them.
func createHierarchy(t *testing.T, conn *gorm.DB) (*model.Environment, *model.JobRole, *model.Activity) {
	t.Helper()
	env := db.CreateTestEnvironment(t, conn, uuid.New().String(), "company-1")
	role := db.CreateTestJobRole(t, conn, uuid.New().String(), env, "Operador")
	act := db.CreateTestActivity(t, conn, uuid.New().String(), env, role, "Operacao de maquina")
	return env, role, act
}

func createQuantLibraryEntry(t *testing.T, conn *gorm.DB) *model.HazardLibrary {
	t.Helper()
	entry := &model.HazardLibrary{
		ID:                 uuid.New().String(),
		Type:               model.AgentPhysical,
		Title:              "Ruido continuo " + uuid.New().String()[:8],
		Hazard:             "Ruido continuo ou intermitente",
		AllowsQuantitative: true,
		Origin:             model.LibraryOriginLibrary,
		Active:             true,
	}
	if err := conn.Create(entry).Error; err != nil {
		t.Fatalf("create library entry: %v", err)
	}
	return entry
}

func createActiveDevice(t *testing.T, conn *gorm.DB) *model.MeasurementDevice {
	t.Helper()
	device := &model.MeasurementDevice{
		ID:           uuid.New().String(),
		SerialNumber: "SN-" + uuid.New().String()[:8],
		Brand:        "Instrutherm",
		Model:        "DEC-490",
		Active:       true,
	}
	if err := conn.Create(device).Error; err != nil {
		t.Fatalf("create device: %v", err)
	}
	return device
}

func createNoiseReference(t *testing.T, conn *gorm.DB, value, proximity float64) *model.Reference {
	t.Helper()
	ref := &model.Reference{
		ID:               uuid.New().String(),
		MeasurementType:  "noise",
		ReferenceValue:   value,
		Unit:             "dB(A)",
		ProximityPercent: proximity,
		Active:           true,
	}
	if err := conn.Create(ref).Error; err != nil {
		t.Fatalf("create reference: %v", err)
	}
	return ref
}

func finalizeTestEnvironment(t *testing.T, svc *Service, envID string) *model.Snapshot {
	t.Helper()
	snap, err := svc.FinalizeEnvironment(context.Background(), testActor(), envID)
	if err != nil {
		t.Fatalf("finalize environment: %v", err)
	}
	return snap
}
