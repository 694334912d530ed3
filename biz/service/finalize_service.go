package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vivasst/risk_survey/biz/dal/model"
	"github.com/vivasst/risk_survey/pkg/common"
	"gorm.io/gorm"
)

// noRoleBucket groups activities whose job role reference cannot be resolved
// at finalize time. They are kept in the snapshot rather than dropped.
const noRoleBucket = "no_role"

type snapshotHazard struct {
	Hazard       model.Hazard        `json:"hazard"`
	Assessment   *model.Assessment   `json:"assessment,omitempty"`
	Measurements []model.Measurement `json:"measurements"`
}

type snapshotActivity struct {
	Activity model.Activity   `json:"activity"`
	Hazards  []snapshotHazard `json:"hazards"`
}

type snapshotRole struct {
	JobRole    *model.JobRole     `json:"jobRole,omitempty"`
	RoleKey    string             `json:"roleKey"`
	Activities []snapshotActivity `json:"activities"`
}

type snapshotPayload struct {
	Environment model.Environment `json:"environment"`
	JobRoles    []snapshotRole    `json:"jobRoles"`
	FinalizedAt time.Time         `json:"finalizedAt"`
	FinalizedBy string            `json:"finalizedBy"`
}

// assembleSubtree loads and nests the full environment subtree.
func (s *Service) assembleSubtree(ctx context.Context, tx *gorm.DB, env *model.Environment) (*snapshotPayload, error) {
	roles, err := s.logic.jobRoleDAO.ListByEnvironment(ctx, tx, env.ID)
	if err != nil {
		return nil, err
	}
	activities, err := s.logic.activityDAO.ListByEnvironment(ctx, tx, env.ID)
	if err != nil {
		return nil, err
	}
	hazards, err := s.logic.hazardDAO.ListByEnvironment(ctx, tx, env.ID)
	if err != nil {
		return nil, err
	}
	assessments, err := s.logic.assessmentDAO.ListByEnvironment(ctx, tx, env.ID)
	if err != nil {
		return nil, err
	}
	measurements, err := s.logic.measurementDAO.ListByEnvironment(ctx, tx, env.ID)
	if err != nil {
		return nil, err
	}

	assessmentByHazard := make(map[string]*model.Assessment, len(assessments))
	for i := range assessments {
		assessmentByHazard[assessments[i].HazardID] = &assessments[i]
	}
	measurementsByHazard := make(map[string][]model.Measurement, len(measurements))
	for _, m := range measurements {
		measurementsByHazard[m.HazardID] = append(measurementsByHazard[m.HazardID], m)
	}
	hazardsByActivity := make(map[string][]snapshotHazard, len(hazards))
	for _, hz := range hazards {
		ms := measurementsByHazard[hz.ID]
		if ms == nil {
			ms = []model.Measurement{}
		}
		hazardsByActivity[hz.ActivityID] = append(hazardsByActivity[hz.ActivityID], snapshotHazard{
			Hazard:       hz,
			Assessment:   assessmentByHazard[hz.ID],
			Measurements: ms,
		})
	}

	roleByID := make(map[string]*model.JobRole, len(roles))
	for i := range roles {
		roleByID[roles[i].ID] = &roles[i]
	}
	activitiesByRole := make(map[string][]snapshotActivity)
	for _, act := range activities {
		hzs := hazardsByActivity[act.ID]
		if hzs == nil {
			hzs = []snapshotHazard{}
		}
		key := act.JobRoleID
		if _, ok := roleByID[key]; !ok {
			key = noRoleBucket
		}
		activitiesByRole[key] = append(activitiesByRole[key], snapshotActivity{Activity: act, Hazards: hzs})
	}

	payload := &snapshotPayload{Environment: *env}
	for i := range roles {
		acts := activitiesByRole[roles[i].ID]
		if acts == nil {
			acts = []snapshotActivity{}
		}
		payload.JobRoles = append(payload.JobRoles, snapshotRole{
			JobRole:    &roles[i],
			RoleKey:    roles[i].ID,
			Activities: acts,
		})
	}
	if orphans := activitiesByRole[noRoleBucket]; len(orphans) > 0 {
		payload.JobRoles = append(payload.JobRoles, snapshotRole{
			RoleKey:    noRoleBucket,
			Activities: orphans,
		})
	}
	return payload, nil
}

// FinalizeEnvironment freezes an environment subtree, materializes the
// snapshot and flips the survey to its terminal state. Concurrent finalize
// calls race on a conditional update: the loser observes SurveyFinalized.
func (s *Service) FinalizeEnvironment(ctx context.Context, actor common.Actor, environmentID string) (*model.Snapshot, error) {
	var snapshot *model.Snapshot
	err := s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		env, err := s.loadEditableEnvironment(ctx, tx, environmentID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		payload, err := s.assembleSubtree(ctx, tx, env)
		if err != nil {
			return err
		}
		payload.FinalizedAt = now
		payload.FinalizedBy = actor.ID
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}

		before := *env
		env.SurveyStatus = model.SurveyStatusFinalized
		env.FinalizedAt = &now
		env.FinalizedBy = actor.ID

		flipped, err := s.logic.environmentDAO.MarkFinalized(ctx, tx, env)
		if err != nil {
			return err
		}
		if !flipped {
			return ErrSurveyFinalized
		}

		snapshot = &model.Snapshot{
			ID:            uuid.New().String(),
			EnvironmentID: env.ID,
			FinalizedAt:   now,
			FinalizedBy:   actor.ID,
			Payload:       string(raw),
		}
		if err := s.logic.snapshotDAO.Create(ctx, tx, snapshot); err != nil {
			return err
		}
		return s.recordAudit(ctx, tx, EntityEnvironment, env.ID, model.AuditActionFinalize, actor, &before, env)
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// GetSnapshot returns the most recent snapshot for an environment. Callers
// never recompute the tree after finalization.
func (s *Service) GetSnapshot(ctx context.Context, environmentID string) (*model.Snapshot, error) {
	if environmentID == "" {
		return nil, validationError("environmentId is required")
	}
	snap, err := s.logic.snapshotDAO.LatestByEnvironment(ctx, s.logic.db, environmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("snapshot")
		}
		return nil, err
	}
	return snap, nil
}
