package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/vivasst/risk_survey/biz/dal/model"
	"github.com/vivasst/risk_survey/biz/model/api"
	"github.com/vivasst/risk_survey/pkg/common"
	"gorm.io/gorm"
)

// Sentinel names for records synthesized by the legacy migration.
const (
	migratedEnvironmentName = "Ambiente migrado"
	migratedActivityName    = "Atividade migrada - modelo anterior"
	migratedLibraryTitle    = "Risco migrado - modelo anterior"
	migratedDevicePrefix    = "MIGR-"
	defaultUnit             = "Unidade nao informada"
	defaultSector           = "Setor nao informado"
	defaultRoleName         = "Funcao nao informada"
)

// migrationRun holds the run-scoped caches for placeholder parents. Keys are
// derived identities, so repeated hazards sharing a key reuse the same
// synthesized record. Deliberately a parameter, never package state.
type migrationRun struct {
	environments map[string]*model.Environment
	roles        map[string]*model.JobRole
	activities   map[string]*model.Activity
	libraries    map[string]*model.HazardLibrary
	summary      api.MigrationSummary
}

func newMigrationRun() *migrationRun {
	return &migrationRun{
		environments: make(map[string]*model.Environment),
		roles:        make(map[string]*model.JobRole),
		activities:   make(map[string]*model.Activity),
		libraries:    make(map[string]*model.HazardLibrary),
	}
}

// normalizeAgentType folds legacy Portuguese category names onto the
// canonical enum. Unknown values land on physical.
func normalizeAgentType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case model.AgentPhysical, "fisico", "físico":
		return model.AgentPhysical
	case model.AgentChemical, "quimico", "químico":
		return model.AgentChemical
	case model.AgentBiological, "biologico", "biológico":
		return model.AgentBiological
	case model.AgentErgonomic, "ergonomico", "ergonômico":
		return model.AgentErgonomic
	case model.AgentAccident, "acidente", "mecanico", "mecânico":
		return model.AgentAccident
	case model.AgentPsychosocial, "psicossocial":
		return model.AgentPsychosocial
	default:
		return model.AgentPhysical
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// resolveEnvironment finds or creates the placeholder environment for a
// hazard's legacy identity. The store is re-queried before creating so
// concurrent runs converge on the same row instead of duplicating it.
func (s *Service) resolveEnvironment(ctx context.Context, tx *gorm.DB, run *migrationRun, hz *model.Hazard) (*model.Environment, error) {
	unit := orDefault(hz.Unit, defaultUnit)
	sector := orDefault(hz.Sector, defaultSector)
	key := hz.CompanyID + "|" + unit + "|" + sector
	if env, ok := run.environments[key]; ok {
		return env, nil
	}

	env, err := s.logic.environmentDAO.FindByIdentity(ctx, tx, hz.CompanyID, unit, sector, migratedEnvironmentName)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if env == nil {
		env = &model.Environment{
			ID:           uuid.New().String(),
			CompanyID:    hz.CompanyID,
			Unit:         unit,
			Sector:       sector,
			Name:         migratedEnvironmentName,
			Type:         model.EnvTypeOther,
			SurveyStatus: model.SurveyStatusDraft,
		}
		if err := s.logic.environmentDAO.Create(ctx, tx, env); err != nil {
			return nil, err
		}
		run.summary.CreatedEnvironments++
	}
	run.environments[key] = env
	return env, nil
}

// resolveJobRole finds or creates the placeholder role under an environment.
func (s *Service) resolveJobRole(ctx context.Context, tx *gorm.DB, run *migrationRun, env *model.Environment, roleName string) (*model.JobRole, error) {
	name := orDefault(roleName, defaultRoleName)
	key := env.ID + "|" + name
	if role, ok := run.roles[key]; ok {
		return role, nil
	}

	role, err := s.logic.jobRoleDAO.FindByName(ctx, tx, env.ID, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if role == nil {
		role = &model.JobRole{
			ID:            uuid.New().String(),
			EnvironmentID: env.ID,
			CompanyID:     env.CompanyID,
			Unit:          env.Unit,
			Sector:        env.Sector,
			Name:          name,
			Active:        true,
		}
		if err := s.logic.jobRoleDAO.Create(ctx, tx, role); err != nil {
			return nil, err
		}
		run.summary.CreatedRoles++
	}
	run.roles[key] = role
	return role, nil
}

// resolveActivity finds or creates the single placeholder activity per role.
func (s *Service) resolveActivity(ctx context.Context, tx *gorm.DB, run *migrationRun, env *model.Environment, role *model.JobRole) (*model.Activity, error) {
	if act, ok := run.activities[role.ID]; ok {
		return act, nil
	}

	act, err := s.logic.activityDAO.FindByName(ctx, tx, role.ID, migratedActivityName)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if act == nil {
		act = &model.Activity{
			ID:            uuid.New().String(),
			EnvironmentID: env.ID,
			JobRoleID:     role.ID,
			CompanyID:     env.CompanyID,
			Name:          migratedActivityName,
			Frequency:     model.FrequencyOccasional,
		}
		if err := s.logic.activityDAO.Create(ctx, tx, act); err != nil {
			return nil, err
		}
		run.summary.CreatedActivities++
	}
	run.activities[role.ID] = act
	return act, nil
}

// resolveLibrary finds or creates a custom library entry keyed by the
// hazard's derived identity.
func (s *Service) resolveLibrary(ctx context.Context, tx *gorm.DB, run *migrationRun, agentType string, hz *model.Hazard) (*model.HazardLibrary, error) {
	key := agentType + "|" + hz.Description + "|" + hz.HazardousEvent
	if entry, ok := run.libraries[key]; ok {
		return entry, nil
	}

	entry, err := s.logic.libraryDAO.FindByIdentity(ctx, tx, agentType, hz.Description, hz.HazardousEvent)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if entry == nil {
		entry = &model.HazardLibrary{
			ID:                 uuid.New().String(),
			Type:               agentType,
			Title:              orDefault(hz.Description, migratedLibraryTitle),
			Hazard:             hz.Description,
			HazardousEvent:     hz.HazardousEvent,
			PotentialDamage:    hz.PotentialDamage,
			AllowsQuantitative: false,
			Origin:             model.LibraryOriginCustom,
			Active:             true,
		}
		if err := s.logic.libraryDAO.Create(ctx, tx, entry); err != nil {
			return nil, err
		}
	}
	run.libraries[key] = entry
	return entry, nil
}

// migrateHazard repairs one legacy hazard in place.
func (s *Service) migrateHazard(ctx context.Context, tx *gorm.DB, run *migrationRun, hz *model.Hazard) error {
	changed := false

	if hz.ActivityID == "" {
		env, err := s.resolveEnvironment(ctx, tx, run, hz)
		if err != nil {
			return err
		}
		role, err := s.resolveJobRole(ctx, tx, run, env, hz.RoleName)
		if err != nil {
			return err
		}
		act, err := s.resolveActivity(ctx, tx, run, env, role)
		if err != nil {
			return err
		}
		hz.EnvironmentID = env.ID
		hz.CompanyID = env.CompanyID
		hz.ActivityID = act.ID
		changed = true
	}

	normalized := normalizeAgentType(hz.AgentCategory)
	if hz.AgentCategory != normalized {
		hz.AgentCategory = normalized
		changed = true
	}

	if hz.RiskLibraryID == "" {
		entry, err := s.resolveLibrary(ctx, tx, run, normalized, hz)
		if err != nil {
			return err
		}
		hz.RiskLibraryID = entry.ID
		run.summary.LinkedLibraries++
		changed = true
	}

	// The device pass runs even for fully linked hazards: a legacy
	// measurement can lack an instrument while its hazard needs no repair.
	if err := s.attachPlaceholderDevices(ctx, tx, run, hz); err != nil {
		return err
	}

	if !changed {
		return nil
	}

	hz.LegacyMigrated = true
	hz.IsCustomRisk = true
	if err := s.logic.hazardDAO.Save(ctx, tx, hz); err != nil {
		return err
	}
	run.summary.MigratedRisks++

	// cascade the new activity onto the one-to-one assessment
	assessment, err := s.logic.assessmentDAO.GetByHazard(ctx, tx, hz.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if assessment != nil && assessment.ActivityID != hz.ActivityID {
		assessment.ActivityID = hz.ActivityID
		assessment.EnvironmentID = hz.EnvironmentID
		if err := s.logic.assessmentDAO.Save(ctx, tx, assessment); err != nil {
			return err
		}
	}

	return nil
}

// attachPlaceholderDevices synthesizes instruments for legacy measurements
// recorded without one. The serial is derived from the measurement id so a
// re-run resolves the same device instead of minting another.
func (s *Service) attachPlaceholderDevices(ctx context.Context, tx *gorm.DB, run *migrationRun, hz *model.Hazard) error {
	measurements, err := s.logic.measurementDAO.ListByHazard(ctx, tx, hz.ID)
	if err != nil {
		return err
	}
	for i := range measurements {
		m := &measurements[i]
		if m.DeviceID != "" {
			continue
		}
		serial := migratedDevicePrefix + m.ID
		device, err := s.logic.deviceDAO.FindBySerial(ctx, tx, serial)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if device == nil {
			device = &model.MeasurementDevice{
				ID:           uuid.New().String(),
				SerialNumber: serial,
				Note:         "Instrumento sintetizado pela migracao do modelo anterior",
				Active:       true,
			}
			if err := s.logic.deviceDAO.Create(ctx, tx, device); err != nil {
				return err
			}
		}
		m.DeviceID = device.ID
		m.InstrumentUsed = device.Label()
		m.EnvironmentID = hz.EnvironmentID
		if err := s.logic.measurementDAO.Save(ctx, tx, m); err != nil {
			return err
		}
		run.summary.LinkedDevices++
	}
	return nil
}

// RunLegacyMigration walks every hazard and backfills the hierarchy linkage
// for rows created under the flat legacy schema. The job is idempotent: a
// second run over a migrated dataset creates nothing and reports zero
// migrated risks. One summary audit record is written per run; synthesized
// records are not individually audited to keep the trail readable on large
// legacy datasets.
func (s *Service) RunLegacyMigration(ctx context.Context, actor common.Actor) (*api.MigrationSummary, error) {
	run := newMigrationRun()

	err := s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hazards, err := s.logic.hazardDAO.ListAll(ctx, tx)
		if err != nil {
			return err
		}
		for i := range hazards {
			if err := s.migrateHazard(ctx, tx, run, &hazards[i]); err != nil {
				return err
			}
		}
		return s.recordAudit(ctx, tx, EntityMigration, uuid.New().String(), model.AuditActionExecute, actor, nil, run.summary)
	})
	if err != nil {
		return nil, err
	}
	return &run.summary, nil
}
