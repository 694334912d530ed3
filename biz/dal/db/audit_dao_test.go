package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/vivasst/risk_survey/biz/dal/model"
)

func TestAuditDAOAppendAndList(t *testing.T) {
	conn := SetupTestDB(t)
	defer CleanupTestDB(t, conn)
	ctx := context.Background()
	dao := NewAuditDAO()

	for i := 0; i < 3; i++ {
		record := &model.AuditRecord{
			ID:         fmt.Sprintf("audit-%d", i),
			EntityType: "hazard",
			EntityID:   "hz-1",
			Action:     model.AuditActionUpdate,
			ActorID:    "tech-1",
		}
		if err := dao.Append(ctx, conn, record); err != nil {
			t.Fatalf("Append: %v", err)
		}
		time.Sleep(2 * time.Millisecond) // distinct created_at ordering
	}
	other := &model.AuditRecord{
		ID:         "audit-other",
		EntityType: "environment",
		EntityID:   "env-1",
		Action:     model.AuditActionCreate,
		ActorID:    "tech-1",
	}
	if err := dao.Append(ctx, conn, other); err != nil {
		t.Fatalf("Append other: %v", err)
	}

	t.Run("filter by entity", func(t *testing.T) {
		records, err := dao.List(ctx, conn, "hazard", "hz-1", 0)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected 3 records, got %d", len(records))
		}
		// most recent first
		if records[0].ID != "audit-2" {
			t.Fatalf("expected audit-2 first, got %s", records[0].ID)
		}
	})

	t.Run("filter by type only", func(t *testing.T) {
		records, err := dao.List(ctx, conn, "environment", "", 0)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
	})

	t.Run("limit", func(t *testing.T) {
		records, err := dao.List(ctx, conn, "", "", 2)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
	})
}
