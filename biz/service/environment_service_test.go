package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vivasst/risk_survey/biz/dal/model"
	"github.com/vivasst/risk_survey/biz/model/api"
)

func TestCreateEnvironment(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	env, err := svc.CreateEnvironment(ctx, testActor(), &api.EnvironmentInput{
		CompanyID: "company-1",
		Unit:      "Unidade 1",
		Sector:    "Producao",
		Name:      "Galpao A",
		Type:      model.EnvTypeShed,
	})
	require.NoError(t, err)
	require.NotEmpty(t, env.ID)
	assert.Equal(t, model.SurveyStatusDraft, env.SurveyStatus)

	records, err := svc.ListAudit(ctx, EntityEnvironment, env.ID, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.AuditActionCreate, records[0].Action)
	assert.Equal(t, "tech-1", records[0].ActorID)
}

func TestCreateEnvironmentValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateEnvironment(context.Background(), testActor(), &api.EnvironmentInput{
		CompanyID: "company-1",
		Name:      "Sala",
		Type:      "castle", // not a known environment type
	})
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeValidation, svcErr.Code)
}

func TestUpdateEnvironmentBlockedAfterFinalize(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	env, _, _ := createHierarchy(t, conn)

	finalizeTestEnvironment(t, svc, env.ID)

	_, err := svc.UpdateEnvironment(ctx, testActor(), env.ID, &api.EnvironmentInput{
		CompanyID: env.CompanyID,
		Name:      "Novo nome",
		Type:      model.EnvTypeShed,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSurveyFinalized))
}

func TestDeleteEnvironmentWithChildrenRejected(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	env, _, _ := createHierarchy(t, conn)

	err := svc.DeleteEnvironment(ctx, testActor(), env.ID)
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeHasDependents, svcErr.Code)
}

func TestDeleteEmptyEnvironment(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	env, err := svc.CreateEnvironment(ctx, testActor(), &api.EnvironmentInput{
		CompanyID: "company-1",
		Name:      "Sala tecnica",
		Type:      model.EnvTypeTechnicalRoom,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEnvironment(ctx, testActor(), env.ID))

	_, err = svc.GetEnvironment(ctx, env.ID)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeNotFound, svcErr.Code)
}

func TestListEnvironmentsRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ListEnvironments(context.Background(), "company-1", "archived")
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeValidation, svcErr.Code)
}
