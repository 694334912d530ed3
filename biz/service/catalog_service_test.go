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

func TestCreateLibraryEntryDuplicateRejected(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	input := &api.LibraryInput{
		Type:  model.AgentPhysical,
		Title: "Ruido continuo",
	}
	_, err := svc.CreateLibraryEntry(ctx, testActor(), input)
	require.NoError(t, err)

	_, err = svc.CreateLibraryEntry(ctx, testActor(), input)
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeDuplicateKey, svcErr.Code)

	// same title under another agent type is a different entry
	_, err = svc.CreateLibraryEntry(ctx, testActor(), &api.LibraryInput{
		Type:  model.AgentChemical,
		Title: "Ruido continuo",
	})
	require.NoError(t, err)
}

func TestRegisterDeviceDuplicateSerialRejected(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	input := &api.DeviceInput{SerialNumber: "SN-001", Brand: "Instrutherm"}
	_, err := svc.RegisterDevice(ctx, testActor(), input)
	require.NoError(t, err)

	_, err = svc.RegisterDevice(ctx, testActor(), input)
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeDuplicateKey, svcErr.Code)
}

func TestUpsertReferenceUpdatesInPlace(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.UpsertReference(ctx, testActor(), &api.ReferenceInput{
		MeasurementType:  "noise",
		ReferenceValue:   85,
		Unit:             "dB(A)",
		ProximityPercent: 10,
	})
	require.NoError(t, err)

	second, err := svc.UpsertReference(ctx, testActor(), &api.ReferenceInput{
		MeasurementType:  "noise",
		ReferenceValue:   80,
		Unit:             "dB(A)",
		ProximityPercent: 15,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 80.0, second.ReferenceValue)

	refs, err := svc.ListReferences(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, refs, 1)
}

func TestSaveClassificationRangesValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	err := svc.SaveClassificationRanges(ctx, testActor(), nil)
	require.Error(t, err)

	err = svc.SaveClassificationRanges(ctx, testActor(), []model.ClassificationRange{
		{Label: "extremo", MinScore: 1, MaxScore: 25},
	})
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeValidation, svcErr.Code)

	err = svc.SaveClassificationRanges(ctx, testActor(), []model.ClassificationRange{
		{Label: model.ClassificationBaixo, MinScore: 1, MaxScore: 12},
		{Label: model.ClassificationCritico, MinScore: 13, MaxScore: 25},
	})
	require.NoError(t, err)

	ranges, err := svc.ListClassificationRanges(ctx)
	require.NoError(t, err)
	require.Len(t, ranges, 2)
	assert.Equal(t, 1, ranges[0].Position)
	assert.Equal(t, 2, ranges[1].Position)
}

func TestSeedIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx))

	entries, err := svc.ListLibraryEntries(ctx, "", nil)
	require.NoError(t, err)
	firstCount := len(entries)
	require.Greater(t, firstCount, 0)

	ranges, err := svc.ListClassificationRanges(ctx)
	require.NoError(t, err)
	require.Len(t, ranges, 4)

	require.NoError(t, svc.Seed(ctx))

	entries, err = svc.ListLibraryEntries(ctx, "", nil)
	require.NoError(t, err)
	assert.Len(t, entries, firstCount)

	refs, err := svc.ListReferences(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, refs, 3)
}

func TestDashboardAggregates(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	env, _, act := createHierarchy(t, conn)
	hz := db.CreateTestHazard(t, conn, uuid.New().String(), env, act, "")

	_, err := svc.UpsertAssessment(ctx, testActor(), &api.AssessmentInput{
		HazardID: hz.ID, Probability: 2, Severity: 2,
	})
	require.NoError(t, err)

	aggregates, err := svc.Dashboard(ctx, env.CompanyID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), aggregates.TotalHazards)
	assert.Equal(t, int64(1), aggregates.Environments[model.SurveyStatusDraft])
	assert.Equal(t, int64(1), aggregates.HazardsByAgentCategory[model.AgentPhysical])
	assert.Equal(t, int64(1), aggregates.ClassificationHistogram[model.ClassificationBaixo])
	assert.Zero(t, aggregates.TotalMeasurements)
}
