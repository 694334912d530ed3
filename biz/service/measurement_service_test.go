package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vivasst/risk_survey/biz/dal/db"
	"github.com/vivasst/risk_survey/biz/dal/model"
	"github.com/vivasst/risk_survey/biz/model/api"
	"gorm.io/gorm"
)

func TestCompareToReference(t *testing.T) {
	ref := &model.Reference{ReferenceValue: 85, Unit: "dB(A)", ProximityPercent: 10}

	cases := []struct {
		measured float64
		want     string
	}{
		{90, model.ComparisonAboveReference},
		{85.1, model.ComparisonAboveReference},
		{85, model.ComparisonNearLimit},
		{80, model.ComparisonNearLimit},
		{76.5, model.ComparisonNearLimit}, // exactly at the near boundary
		{76.4, model.ComparisonBelowReference},
		{50, model.ComparisonBelowReference},
	}
	for _, tc := range cases {
		got, applied := compareToReference(tc.measured, ref)
		assert.Equal(t, tc.want, got, "measured %v", tc.measured)
		assert.Equal(t, 85.0, applied.Limit)
		assert.Equal(t, 10.0, applied.ProximityPercent)
	}

	got, applied := compareToReference(90, nil)
	assert.Equal(t, model.ComparisonNoReference, got)
	assert.Zero(t, applied.Limit)
}

// measurementFixture sets up a hazard ready to receive measurements.
func measurementFixture(t *testing.T, svc *Service, conn *gorm.DB) (*model.Hazard, *model.MeasurementDevice) {
	t.Helper()
	env, _, act := createHierarchy(t, conn)
	entry := createQuantLibraryEntry(t, conn)
	hz := db.CreateTestHazard(t, conn, uuid.New().String(), env, act, entry.ID)
	device := createActiveDevice(t, conn)

	_, err := svc.UpsertAssessment(context.Background(), testActor(), &api.AssessmentInput{
		HazardID:    hz.ID,
		Probability: 2,
		Severity:    2,
	})
	require.NoError(t, err)
	return hz, device
}

func TestRecordMeasurementComparesAgainstReference(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	hz, device := measurementFixture(t, svc, conn)
	createNoiseReference(t, conn, 85, 10)

	m, err := svc.RecordMeasurement(ctx, testActor(), &api.MeasurementInput{
		HazardID:        hz.ID,
		DeviceID:        device.ID,
		MeasurementType: "noise",
		MeasuredValue:   90,
		Unit:            "dB(A)",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ComparisonAboveReference, m.Comparison)
	assert.Equal(t, 85.0, m.AppliedReference.Limit)
	assert.Equal(t, device.Label(), m.InstrumentUsed)
}

func TestRecordMeasurementWithoutReference(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	hz, device := measurementFixture(t, svc, conn)

	m, err := svc.RecordMeasurement(ctx, testActor(), &api.MeasurementInput{
		HazardID:        hz.ID,
		DeviceID:        device.ID,
		MeasurementType: "vibration",
		MeasuredValue:   1.2,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ComparisonNoReference, m.Comparison)
	assert.Zero(t, m.AppliedReference.Limit)
}

func TestRecordMeasurementRequiresAssessmentFirst(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	env, _, act := createHierarchy(t, conn)
	entry := createQuantLibraryEntry(t, conn)
	hz := db.CreateTestHazard(t, conn, uuid.New().String(), env, act, entry.ID)
	device := createActiveDevice(t, conn)

	_, err := svc.RecordMeasurement(ctx, testActor(), &api.MeasurementInput{
		HazardID:        hz.ID,
		DeviceID:        device.ID,
		MeasurementType: "noise",
		MeasuredValue:   80,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrQualitativeRequired))
}

func TestRecordMeasurementRequiresQuantitativeLibrary(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	env, _, act := createHierarchy(t, conn)
	// hazard without a library link cannot receive quantitative readings
	hz := db.CreateTestHazard(t, conn, uuid.New().String(), env, act, "")
	device := createActiveDevice(t, conn)

	_, err := svc.UpsertAssessment(ctx, testActor(), &api.AssessmentInput{
		HazardID:    hz.ID,
		Probability: 2,
		Severity:    2,
	})
	require.NoError(t, err)

	_, err = svc.RecordMeasurement(ctx, testActor(), &api.MeasurementInput{
		HazardID:        hz.ID,
		DeviceID:        device.ID,
		MeasurementType: "noise",
		MeasuredValue:   80,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrQuantitativeNotAllowed))
}

func TestRecordMeasurementRejectsInactiveDevice(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	hz, device := measurementFixture(t, svc, conn)

	require.NoError(t, svc.DeactivateDevice(ctx, testActor(), device.ID))

	_, err := svc.RecordMeasurement(ctx, testActor(), &api.MeasurementInput{
		HazardID:        hz.ID,
		DeviceID:        device.ID,
		MeasurementType: "noise",
		MeasuredValue:   80,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDevice))
}

func TestUpdateMeasurementReevaluatesReference(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	hz, device := measurementFixture(t, svc, conn)
	createNoiseReference(t, conn, 85, 10)

	m, err := svc.RecordMeasurement(ctx, testActor(), &api.MeasurementInput{
		HazardID:        hz.ID,
		DeviceID:        device.ID,
		MeasurementType: "noise",
		MeasuredValue:   50,
	})
	require.NoError(t, err)
	require.Equal(t, model.ComparisonBelowReference, m.Comparison)

	updated, err := svc.UpdateMeasurement(ctx, testActor(), m.ID, &api.MeasurementInput{
		HazardID:        hz.ID,
		DeviceID:        device.ID,
		MeasurementType: "noise",
		MeasuredValue:   80,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ComparisonNearLimit, updated.Comparison)
}

func TestMeasurementBlockedAfterFinalize(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	hz, device := measurementFixture(t, svc, conn)

	finalizeTestEnvironment(t, svc, hz.EnvironmentID)

	_, err := svc.RecordMeasurement(ctx, testActor(), &api.MeasurementInput{
		HazardID:        hz.ID,
		DeviceID:        device.ID,
		MeasurementType: "noise",
		MeasuredValue:   80,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSurveyFinalized))
}
