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
)

func TestCreateJobRoleDuplicateNameRejected(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	env, _, _ := createHierarchy(t, conn)

	_, err := svc.CreateJobRole(ctx, testActor(), &api.JobRoleInput{
		EnvironmentID: env.ID,
		Name:          "Operador", // already created by the fixture
	})
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeDuplicateKey, svcErr.Code)

	// the same name under another environment is fine
	other, err := svc.CreateEnvironment(ctx, testActor(), &api.EnvironmentInput{
		CompanyID: "company-1",
		Name:      "Laboratorio",
		Type:      model.EnvTypeLab,
	})
	require.NoError(t, err)
	_, err = svc.CreateJobRole(ctx, testActor(), &api.JobRoleInput{
		EnvironmentID: other.ID,
		Name:          "Operador",
	})
	require.NoError(t, err)
}

func TestDeleteJobRoleWithActivitiesRejected(t *testing.T) {
	svc, conn := newTestService(t)
	_, role, _ := createHierarchy(t, conn)

	err := svc.DeleteJobRole(context.Background(), testActor(), role.ID)
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeHasDependents, svcErr.Code)
}

func TestCreateActivityCrossEnvironmentRoleRejected(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	env, _, _ := createHierarchy(t, conn)
	otherEnv := db.CreateTestEnvironment(t, conn, uuid.New().String(), "company-1")
	otherRole := db.CreateTestJobRole(t, conn, uuid.New().String(), otherEnv, "Soldador")

	_, err := svc.CreateActivity(ctx, testActor(), &api.ActivityInput{
		EnvironmentID: env.ID,
		JobRoleID:     otherRole.ID,
		Name:          "Solda de estrutura",
	})
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeCrossReferenceMismatch, svcErr.Code)
}

func TestDeleteActivityWithHazardsRejected(t *testing.T) {
	svc, conn := newTestService(t)
	env, _, act := createHierarchy(t, conn)
	db.CreateTestHazard(t, conn, uuid.New().String(), env, act, "")

	err := svc.DeleteActivity(context.Background(), testActor(), act.ID)
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeHasDependents, svcErr.Code)
}

func TestCreateHazardRejectsInactiveLibraryEntry(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	_, _, act := createHierarchy(t, conn)
	entry := createQuantLibraryEntry(t, conn)
	require.NoError(t, svc.DeactivateLibraryEntry(ctx, testActor(), entry.ID))

	_, err := svc.CreateHazard(ctx, testActor(), &api.HazardInput{
		ActivityID:    act.ID,
		RiskLibraryID: entry.ID,
		AgentCategory: model.AgentPhysical,
		Description:   "Ruido continuo",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidLibraryReference))
}

func TestCreateHazardDenormalizesParentChain(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	env, _, act := createHierarchy(t, conn)

	hz, err := svc.CreateHazard(ctx, testActor(), &api.HazardInput{
		ActivityID:    act.ID,
		AgentCategory: model.AgentChemical,
		Description:   "Vapores de solvente",
	})
	require.NoError(t, err)
	assert.Equal(t, env.ID, hz.EnvironmentID)
	assert.Equal(t, env.CompanyID, hz.CompanyID)
	assert.Equal(t, model.ConditionNormal, hz.Condition)
}

func TestDeleteHazardCascades(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	hz, device := measurementFixture(t, svc, conn)
	createNoiseReference(t, conn, 85, 10)

	_, err := svc.RecordMeasurement(ctx, testActor(), &api.MeasurementInput{
		HazardID: hz.ID, DeviceID: device.ID, MeasurementType: "noise", MeasuredValue: 70,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteHazard(ctx, testActor(), hz.ID))

	_, err = svc.GetAssessment(ctx, hz.ID)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeNotFound, svcErr.Code)

	ms, err := svc.ListMeasurements(ctx, hz.ID)
	require.NoError(t, err)
	assert.Empty(t, ms)
}

func TestCreateHazardAcceptsEitherAgentFieldName(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	_, _, act := createHierarchy(t, conn)

	// legacy name alone
	hz, err := svc.CreateHazard(ctx, testActor(), &api.HazardInput{
		ActivityID:      act.ID,
		CategoriaAgente: model.AgentChemical,
		Description:     "Vapores de solvente",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AgentChemical, hz.AgentCategory)

	// English name wins when both are sent
	hz, err = svc.CreateHazard(ctx, testActor(), &api.HazardInput{
		ActivityID:      act.ID,
		AgentCategory:   model.AgentPhysical,
		CategoriaAgente: model.AgentChemical,
		Description:     "Ruido de prensa",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AgentPhysical, hz.AgentCategory)

	// neither name is a validation error
	_, err = svc.CreateHazard(ctx, testActor(), &api.HazardInput{
		ActivityID:  act.ID,
		Description: "Sem categoria",
	})
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeValidation, svcErr.Code)
}

func TestGetHazardEmitsBothAgentFieldNames(t *testing.T) {
	svc, conn := newTestService(t)
	env, _, act := createHierarchy(t, conn)
	hz := db.CreateTestHazard(t, conn, uuid.New().String(), env, act, "")

	view, err := svc.GetHazard(context.Background(), hz.ID)
	require.NoError(t, err)
	assert.Equal(t, view.AgentCategory, view.CategoriaAgente)
	assert.Equal(t, model.AgentPhysical, view.CategoriaAgente)
}
