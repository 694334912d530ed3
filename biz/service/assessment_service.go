package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vivasst/risk_survey/biz/dal/model"
	"github.com/vivasst/risk_survey/biz/model/api"
	"github.com/vivasst/risk_survey/pkg/common"
	"github.com/vivasst/risk_survey/pkg/validator"
	"gorm.io/gorm"
)

// defaultRanges is the built-in classification table used when no range
// configuration is stored.
var defaultRanges = []model.ClassificationRange{
	{Label: model.ClassificationBaixo, MinScore: 1, MaxScore: 4, Position: 1},
	{Label: model.ClassificationMedio, MinScore: 5, MaxScore: 9, Position: 2},
	{Label: model.ClassificationAlto, MinScore: 10, MaxScore: 16, Position: 3},
	{Label: model.ClassificationCritico, MinScore: 17, MaxScore: 25, Position: 4},
}

// classifyScore picks the first range whose [min,max] contains score. When no
// configured range matches the score falls into the most severe bucket; a
// misconfigured table must never make a hazard look safer than it is.
func classifyScore(score int, ranges []model.ClassificationRange) string {
	if len(ranges) == 0 {
		ranges = defaultRanges
	}
	for _, r := range ranges {
		if score >= r.MinScore && score <= r.MaxScore {
			return r.Label
		}
	}
	return model.ClassificationCritico
}

// activeRanges loads the configured classification table, degrading to the
// built-in default when none is stored.
func (s *Service) activeRanges(ctx context.Context, tx *gorm.DB) []model.ClassificationRange {
	ranges, err := s.logic.referenceDAO.ListActiveRanges(ctx, tx)
	if err != nil || len(ranges) == 0 {
		return defaultRanges
	}
	return ranges
}

// UpsertAssessment creates or updates the one qualitative assessment of a
// hazard. Repeated calls update in place and audit as "update".
func (s *Service) UpsertAssessment(ctx context.Context, actor common.Actor, input *api.AssessmentInput) (*model.Assessment, error) {
	if input == nil {
		return nil, validationError("assessment payload is required")
	}
	if err := validator.Struct(input); err != nil {
		return nil, validationError("%s", err.Error())
	}
	if input.Probability < 1 || input.Probability > 5 {
		return nil, validationError("probability must be an integer between 1 and 5")
	}
	if input.Severity < 1 || input.Severity > 5 {
		return nil, validationError("severity must be an integer between 1 and 5")
	}

	var result *model.Assessment
	err := s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hz, err := s.logic.hazardDAO.GetByID(ctx, tx, input.HazardID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("hazard")
			}
			return err
		}
		if _, err := s.loadEditableEnvironment(ctx, tx, hz.EnvironmentID); err != nil {
			return err
		}

		score := input.Probability * input.Severity
		classification := classifyScore(score, s.activeRanges(ctx, tx))
		if (classification == model.ClassificationAlto || classification == model.ClassificationCritico) &&
			input.TechnicalJustification == "" {
			return ErrJustificationRequired
		}

		confidence := input.ConfidenceLevel
		if confidence == "" {
			confidence = model.ConfidenceMedium
		}

		existing, err := s.logic.assessmentDAO.GetByHazard(ctx, tx, hz.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if existing == nil {
			entity := &model.Assessment{
				ID:                     uuid.New().String(),
				HazardID:               hz.ID,
				EnvironmentID:          hz.EnvironmentID,
				ActivityID:             hz.ActivityID,
				Probability:            input.Probability,
				Severity:               input.Severity,
				Score:                  score,
				Classification:         classification,
				TechnicalJustification: input.TechnicalJustification,
				ConfidenceLevel:        confidence,
			}
			if err := s.logic.assessmentDAO.Create(ctx, tx, entity); err != nil {
				return err
			}
			result = entity
			return s.recordAudit(ctx, tx, EntityAssessment, entity.ID, model.AuditActionCreate, actor, nil, entity)
		}

		before := *existing
		existing.Probability = input.Probability
		existing.Severity = input.Severity
		existing.Score = score
		existing.Classification = classification
		existing.TechnicalJustification = input.TechnicalJustification
		existing.ConfidenceLevel = confidence
		if err := s.logic.assessmentDAO.Save(ctx, tx, existing); err != nil {
			return err
		}
		result = existing
		return s.recordAudit(ctx, tx, EntityAssessment, existing.ID, model.AuditActionUpdate, actor, &before, existing)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetAssessment returns the assessment linked to a hazard.
func (s *Service) GetAssessment(ctx context.Context, hazardID string) (*model.Assessment, error) {
	if hazardID == "" {
		return nil, validationError("hazardId is required")
	}
	entity, err := s.logic.assessmentDAO.GetByHazard(ctx, s.logic.db, hazardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("assessment")
		}
		return nil, err
	}
	return entity, nil
}
