package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vivasst/risk_survey/biz/dal/model"
	"gorm.io/gorm"
)

func TestEnvironmentDAOCRUD(t *testing.T) {
	conn := SetupTestDB(t)
	defer CleanupTestDB(t, conn)
	ctx := context.Background()
	dao := NewEnvironmentDAO()

	env := CreateTestEnvironment(t, conn, "env-1", "company-1")

	t.Run("GetByID", func(t *testing.T) {
		got, err := dao.GetByID(ctx, conn, env.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Name != env.Name {
			t.Fatalf("expected name %q, got %q", env.Name, got.Name)
		}
	})

	t.Run("Save", func(t *testing.T) {
		env.Name = "Galpao renovado"
		if err := dao.Save(ctx, conn, env); err != nil {
			t.Fatalf("Save: %v", err)
		}
		got, err := dao.GetByID(ctx, conn, env.ID)
		if err != nil {
			t.Fatalf("GetByID after save: %v", err)
		}
		if got.Name != "Galpao renovado" {
			t.Fatalf("expected updated name, got %q", got.Name)
		}
	})

	t.Run("List filters by status", func(t *testing.T) {
		envs, err := dao.List(ctx, conn, "company-1", model.SurveyStatusDraft)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(envs) != 1 {
			t.Fatalf("expected 1 draft environment, got %d", len(envs))
		}
		envs, err = dao.List(ctx, conn, "company-1", model.SurveyStatusFinalized)
		if err != nil {
			t.Fatalf("List finalized: %v", err)
		}
		if len(envs) != 0 {
			t.Fatalf("expected no finalized environments, got %d", len(envs))
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := dao.Delete(ctx, conn, env.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := dao.GetByID(ctx, conn, env.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Fatalf("expected record not found, got %v", err)
		}
	})
}

func TestEnvironmentDAOFindByIdentity(t *testing.T) {
	conn := SetupTestDB(t)
	defer CleanupTestDB(t, conn)
	ctx := context.Background()
	dao := NewEnvironmentDAO()

	env := CreateTestEnvironment(t, conn, "env-1", "company-1")

	got, err := dao.FindByIdentity(ctx, conn, env.CompanyID, env.Unit, env.Sector, env.Name)
	if err != nil {
		t.Fatalf("FindByIdentity: %v", err)
	}
	if got.ID != env.ID {
		t.Fatalf("expected id %s, got %s", env.ID, got.ID)
	}

	if _, err := dao.FindByIdentity(ctx, conn, env.CompanyID, "other unit", env.Sector, env.Name); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestEnvironmentDAOMarkFinalized(t *testing.T) {
	conn := SetupTestDB(t)
	defer CleanupTestDB(t, conn)
	ctx := context.Background()
	dao := NewEnvironmentDAO()

	env := CreateTestEnvironment(t, conn, "env-1", "company-1")
	now := time.Now().UTC()
	env.FinalizedAt = &now
	env.FinalizedBy = "tech-1"

	flipped, err := dao.MarkFinalized(ctx, conn, env)
	if err != nil {
		t.Fatalf("MarkFinalized: %v", err)
	}
	if !flipped {
		t.Fatalf("expected first MarkFinalized to flip the status")
	}

	// second attempt observes the terminal state
	flipped, err = dao.MarkFinalized(ctx, conn, env)
	if err != nil {
		t.Fatalf("MarkFinalized second call: %v", err)
	}
	if flipped {
		t.Fatalf("expected second MarkFinalized to report no change")
	}

	got, err := dao.GetByID(ctx, conn, env.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.SurveyStatus != model.SurveyStatusFinalized {
		t.Fatalf("expected finalized status, got %s", got.SurveyStatus)
	}
	if got.FinalizedBy != "tech-1" {
		t.Fatalf("expected finalized_by tech-1, got %s", got.FinalizedBy)
	}
}
