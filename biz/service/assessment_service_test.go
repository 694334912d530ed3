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

func TestClassifyScore(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{1, model.ClassificationBaixo},
		{4, model.ClassificationBaixo},
		{5, model.ClassificationMedio},
		{9, model.ClassificationMedio},
		{10, model.ClassificationAlto},
		{16, model.ClassificationAlto},
		{17, model.ClassificationCritico},
		{25, model.ClassificationCritico},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, classifyScore(tc.score, nil), "score %d", tc.score)
	}
}

func TestClassifyScoreFailSafe(t *testing.T) {
	// a gappy table must never classify an unmatched score as anything
	// milder than critico
	gappy := []model.ClassificationRange{
		{Label: model.ClassificationBaixo, MinScore: 1, MaxScore: 4, Position: 1},
		{Label: model.ClassificationAlto, MinScore: 10, MaxScore: 16, Position: 2},
	}
	assert.Equal(t, model.ClassificationCritico, classifyScore(7, gappy))
}

func TestUpsertAssessmentCreatesThenUpdates(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	env, _, act := createHierarchy(t, conn)
	hz := db.CreateTestHazard(t, conn, uuid.New().String(), env, act, "")

	first, err := svc.UpsertAssessment(ctx, testActor(), &api.AssessmentInput{
		HazardID:    hz.ID,
		Probability: 2,
		Severity:    2,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, first.Score)
	assert.Equal(t, model.ClassificationBaixo, first.Classification)
	assert.Equal(t, model.ConfidenceMedium, first.ConfidenceLevel)

	second, err := svc.UpsertAssessment(ctx, testActor(), &api.AssessmentInput{
		HazardID:    hz.ID,
		Probability: 3,
		Severity:    3,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 9, second.Score)
	assert.Equal(t, model.ClassificationMedio, second.Classification)

	records, err := svc.ListAudit(ctx, EntityAssessment, first.ID, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// newest first
	assert.Equal(t, model.AuditActionUpdate, records[0].Action)
	assert.Equal(t, model.AuditActionCreate, records[1].Action)
}

func TestUpsertAssessmentBoundsChecked(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	env, _, act := createHierarchy(t, conn)
	hz := db.CreateTestHazard(t, conn, uuid.New().String(), env, act, "")

	for _, input := range []*api.AssessmentInput{
		{HazardID: hz.ID, Probability: 0, Severity: 3},
		{HazardID: hz.ID, Probability: 3, Severity: 6},
	} {
		_, err := svc.UpsertAssessment(ctx, testActor(), input)
		require.Error(t, err)
		var svcErr *Error
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, CodeValidation, svcErr.Code)
	}
}

func TestUpsertAssessmentJustificationRequired(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	env, _, act := createHierarchy(t, conn)
	hz := db.CreateTestHazard(t, conn, uuid.New().String(), env, act, "")

	// 4x4 = 16 -> alto, must carry a justification
	_, err := svc.UpsertAssessment(ctx, testActor(), &api.AssessmentInput{
		HazardID:    hz.ID,
		Probability: 4,
		Severity:    4,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrJustificationRequired))

	assessment, err := svc.UpsertAssessment(ctx, testActor(), &api.AssessmentInput{
		HazardID:               hz.ID,
		Probability:            4,
		Severity:               4,
		TechnicalJustification: "Exposicao direta sem protecao coletiva",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ClassificationAlto, assessment.Classification)
}

func TestUpsertAssessmentBlockedAfterFinalize(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	env, _, act := createHierarchy(t, conn)
	hz := db.CreateTestHazard(t, conn, uuid.New().String(), env, act, "")

	finalizeTestEnvironment(t, svc, env.ID)

	_, err := svc.UpsertAssessment(ctx, testActor(), &api.AssessmentInput{
		HazardID:    hz.ID,
		Probability: 2,
		Severity:    2,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSurveyFinalized))
}
