package service

import (
	"context"

	"github.com/vivasst/risk_survey/biz/dal/model"
	"github.com/vivasst/risk_survey/biz/model/api"
)

type bucketCount struct {
	Bucket string
	Total  int64
}

func (s *Service) countByColumn(ctx context.Context, entity any, column string, companyID string) (map[string]int64, int64, error) {
	tx := s.logic.db.WithContext(ctx).Model(entity).
		Select(column + " AS bucket, COUNT(*) AS total").
		Group(column)
	if companyID != "" {
		tx = tx.Where("company_id = ?", companyID)
	}

	var rows []bucketCount
	if err := tx.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make(map[string]int64, len(rows))
	var total int64
	for _, r := range rows {
		out[r.Bucket] = r.Total
		total += r.Total
	}
	return out, total, nil
}

// Dashboard aggregates the survey dataset for reporting. companyID narrows
// the hierarchy counters; catalog-level tables are always global.
func (s *Service) Dashboard(ctx context.Context, companyID string) (*api.DashboardAggregates, error) {
	envs, _, err := s.countByColumn(ctx, &model.Environment{}, "survey_status", companyID)
	if err != nil {
		return nil, err
	}
	hazards, totalHazards, err := s.countByColumn(ctx, &model.Hazard{}, "agent_category", companyID)
	if err != nil {
		return nil, err
	}

	classTx := s.logic.db.WithContext(ctx).Model(&model.Assessment{}).
		Select("classification AS bucket, COUNT(*) AS total").
		Group("classification")
	if companyID != "" {
		classTx = classTx.Where("environment_id IN (?)",
			s.logic.db.Model(&model.Environment{}).Select("id").Where("company_id = ?", companyID))
	}
	var classRows []bucketCount
	if err := classTx.Find(&classRows).Error; err != nil {
		return nil, err
	}
	classifications := make(map[string]int64, len(classRows))
	for _, r := range classRows {
		classifications[r.Bucket] = r.Total
	}

	compTx := s.logic.db.WithContext(ctx).Model(&model.Measurement{}).
		Select("comparison AS bucket, COUNT(*) AS total").
		Group("comparison")
	if companyID != "" {
		compTx = compTx.Where("environment_id IN (?)",
			s.logic.db.Model(&model.Environment{}).Select("id").Where("company_id = ?", companyID))
	}
	var compRows []bucketCount
	if err := compTx.Find(&compRows).Error; err != nil {
		return nil, err
	}
	comparisons := make(map[string]int64, len(compRows))
	var totalMeasurements int64
	for _, r := range compRows {
		comparisons[r.Bucket] = r.Total
		totalMeasurements += r.Total
	}

	return &api.DashboardAggregates{
		Environments:            envs,
		HazardsByAgentCategory:  hazards,
		ClassificationHistogram: classifications,
		ComparisonHistogram:     comparisons,
		TotalHazards:            totalHazards,
		TotalMeasurements:       totalMeasurements,
	}, nil
}
