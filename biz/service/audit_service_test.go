package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vivasst/risk_survey/biz/dal/db"
	"github.com/vivasst/risk_survey/biz/dal/model"
	"github.com/vivasst/risk_survey/biz/model/api"
)

func TestDiffSnapshotsSentinels(t *testing.T) {
	after := entitySnapshot(&model.JobRole{ID: "r1", Name: "Operador"})
	diff := diffSnapshots(nil, after)
	require.NotNil(t, diff)
	assert.Contains(t, diff, "created")

	diff = diffSnapshots(after, nil)
	require.NotNil(t, diff)
	assert.Contains(t, diff, "removed")

	assert.Nil(t, diffSnapshots(nil, nil))
	assert.Nil(t, diffSnapshots(after, after))
}

func TestHazardUpdateAuditsExactChange(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	env, _, act := createHierarchy(t, conn)
	hz := db.CreateTestHazard(t, conn, uuid.New().String(), env, act, "")

	input := &api.HazardInput{
		ActivityID:       hz.ActivityID,
		AgentCategory:    hz.AgentCategory,
		Description:      hz.Description,
		Condition:        hz.Condition,
		ExistingControls: "Protetor auricular tipo concha",
	}
	_, err := svc.UpdateHazard(ctx, testActor(), hz.ID, input)
	require.NoError(t, err)

	records, err := svc.ListAudit(ctx, EntityHazard, hz.ID, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	changes := records[0].Changes
	require.Len(t, changes, 1, "only the edited field should appear in the diff: %v", changes)
	assert.Contains(t, changes, "controlesExistentes")
}

func TestAuditTrailIsAppendOnlyOrdering(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	env, _, act := createHierarchy(t, conn)
	hz := db.CreateTestHazard(t, conn, uuid.New().String(), env, act, "")

	input := &api.HazardInput{
		ActivityID:    hz.ActivityID,
		AgentCategory: hz.AgentCategory,
		Description:   "Ruido de compressor",
		Condition:     hz.Condition,
	}
	_, err := svc.UpdateHazard(ctx, testActor(), hz.ID, input)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteHazard(ctx, testActor(), hz.ID))

	records, err := svc.ListAudit(ctx, EntityHazard, hz.ID, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, model.AuditActionDelete, records[0].Action)
	assert.Equal(t, model.AuditActionUpdate, records[1].Action)
}

func TestListAuditDefaultLimit(t *testing.T) {
	svc, _ := newTestService(t)

	records, err := svc.ListAudit(context.Background(), "", "", 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}
