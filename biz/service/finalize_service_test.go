package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vivasst/risk_survey/biz/dal/db"
	"github.com/vivasst/risk_survey/biz/dal/model"
	"github.com/vivasst/risk_survey/biz/model/api"
)

func TestFinalizeEnvironmentSnapshotContents(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	env, role, act := createHierarchy(t, conn)
	entry := createQuantLibraryEntry(t, conn)
	device := createActiveDevice(t, conn)
	createNoiseReference(t, conn, 85, 10)

	hz := db.CreateTestHazard(t, conn, uuid.New().String(), env, act, entry.ID)
	_, err := svc.UpsertAssessment(ctx, testActor(), &api.AssessmentInput{
		HazardID: hz.ID, Probability: 2, Severity: 3,
	})
	require.NoError(t, err)
	_, err = svc.RecordMeasurement(ctx, testActor(), &api.MeasurementInput{
		HazardID: hz.ID, DeviceID: device.ID, MeasurementType: "noise", MeasuredValue: 88,
	})
	require.NoError(t, err)

	snap := finalizeTestEnvironment(t, svc, env.ID)
	require.NotEmpty(t, snap.Payload)

	var payload struct {
		Environment model.Environment `json:"environment"`
		JobRoles    []struct {
			RoleKey    string `json:"roleKey"`
			Activities []struct {
				Activity model.Activity `json:"activity"`
				Hazards  []struct {
					Hazard       model.Hazard        `json:"hazard"`
					Assessment   *model.Assessment   `json:"assessment"`
					Measurements []model.Measurement `json:"measurements"`
				} `json:"hazards"`
			} `json:"activities"`
		} `json:"jobRoles"`
	}
	require.NoError(t, json.Unmarshal([]byte(snap.Payload), &payload))

	assert.Equal(t, env.ID, payload.Environment.ID)
	require.Len(t, payload.JobRoles, 1)
	assert.Equal(t, role.ID, payload.JobRoles[0].RoleKey)
	require.Len(t, payload.JobRoles[0].Activities, 1)
	hazards := payload.JobRoles[0].Activities[0].Hazards
	require.Len(t, hazards, 1)
	require.NotNil(t, hazards[0].Assessment)
	assert.Equal(t, 6, hazards[0].Assessment.Score)
	require.Len(t, hazards[0].Measurements, 1)
	assert.Equal(t, model.ComparisonAboveReference, hazards[0].Measurements[0].Comparison)
}

func TestFinalizeTwiceRejected(t *testing.T) {
	svc, conn := newTestService(t)
	env, _, _ := createHierarchy(t, conn)

	finalizeTestEnvironment(t, svc, env.ID)

	_, err := svc.FinalizeEnvironment(context.Background(), testActor(), env.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSurveyFinalized))
}

func TestSnapshotReadsAreStable(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	env, _, act := createHierarchy(t, conn)
	db.CreateTestHazard(t, conn, uuid.New().String(), env, act, "")

	finalizeTestEnvironment(t, svc, env.ID)

	first, err := svc.GetSnapshot(ctx, env.ID)
	require.NoError(t, err)
	second, err := svc.GetSnapshot(ctx, env.ID)
	require.NoError(t, err)

	// the stored payload is returned verbatim, never recomputed
	assert.Equal(t, first.Payload, second.Payload)
	assert.Equal(t, first.ID, second.ID)
}

func TestSnapshotKeepsOrphanActivities(t *testing.T) {
	svc, conn := newTestService(t)
	env, _, act := createHierarchy(t, conn)

	// detach the activity from its role to simulate legacy data
	require.NoError(t, conn.Model(&model.Activity{}).
		Where("id = ?", act.ID).
		Update("job_role_id", "missing-role").Error)

	snap := finalizeTestEnvironment(t, svc, env.ID)

	var payload struct {
		JobRoles []struct {
			RoleKey    string           `json:"roleKey"`
			Activities []map[string]any `json:"activities"`
		} `json:"jobRoles"`
	}
	require.NoError(t, json.Unmarshal([]byte(snap.Payload), &payload))

	var found bool
	for _, r := range payload.JobRoles {
		if r.RoleKey == noRoleBucket {
			found = true
			assert.Len(t, r.Activities, 1)
		}
	}
	assert.True(t, found, "expected a %s bucket in the snapshot", noRoleBucket)
}

func TestGetSnapshotMissing(t *testing.T) {
	svc, conn := newTestService(t)
	env, _, _ := createHierarchy(t, conn)

	_, err := svc.GetSnapshot(context.Background(), env.ID)
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeNotFound, svcErr.Code)
}
