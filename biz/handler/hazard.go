package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/vivasst/risk_survey/biz/model/api"
)

// ---- Hazards ----

func (h *SurveyHandler) CreateHazard(ctx context.Context, c *app.RequestContext) {
	var input api.HazardInput
	if err := c.BindJSON(&input); err != nil {
		RespondError(c, err)
		return
	}
	hz, err := h.service.CreateHazard(ctx, actorFrom(ctx), &input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, api.NewHazardView(hz))
}

func (h *SurveyHandler) UpdateHazard(ctx context.Context, c *app.RequestContext) {
	var input api.HazardInput
	if err := c.BindJSON(&input); err != nil {
		RespondError(c, err)
		return
	}
	hz, err := h.service.UpdateHazard(ctx, actorFrom(ctx), c.Param("id"), &input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, api.NewHazardView(hz))
}

func (h *SurveyHandler) DeleteHazard(ctx context.Context, c *app.RequestContext) {
	if err := h.service.DeleteHazard(ctx, actorFrom(ctx), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, nil)
}

func (h *SurveyHandler) GetHazard(ctx context.Context, c *app.RequestContext) {
	view, err := h.service.GetHazard(ctx, c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, view)
}

func (h *SurveyHandler) ListHazards(ctx context.Context, c *app.RequestContext) {
	views, err := h.service.ListHazards(ctx, c.Query("environmentId"), c.Query("activityId"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, views)
}

// ---- Assessments ----

func (h *SurveyHandler) UpsertAssessment(ctx context.Context, c *app.RequestContext) {
	var input api.AssessmentInput
	if err := c.BindJSON(&input); err != nil {
		RespondError(c, err)
		return
	}
	assessment, err := h.service.UpsertAssessment(ctx, actorFrom(ctx), &input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, assessment)
}

func (h *SurveyHandler) GetAssessment(ctx context.Context, c *app.RequestContext) {
	assessment, err := h.service.GetAssessment(ctx, c.Query("hazardId"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, assessment)
}

// ---- Measurements ----

func (h *SurveyHandler) RecordMeasurement(ctx context.Context, c *app.RequestContext) {
	var input api.MeasurementInput
	if err := c.BindJSON(&input); err != nil {
		RespondError(c, err)
		return
	}
	m, err := h.service.RecordMeasurement(ctx, actorFrom(ctx), &input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, m)
}

func (h *SurveyHandler) UpdateMeasurement(ctx context.Context, c *app.RequestContext) {
	var input api.MeasurementInput
	if err := c.BindJSON(&input); err != nil {
		RespondError(c, err)
		return
	}
	m, err := h.service.UpdateMeasurement(ctx, actorFrom(ctx), c.Param("id"), &input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, m)
}

func (h *SurveyHandler) DeleteMeasurement(ctx context.Context, c *app.RequestContext) {
	if err := h.service.DeleteMeasurement(ctx, actorFrom(ctx), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, nil)
}

func (h *SurveyHandler) ListMeasurements(ctx context.Context, c *app.RequestContext) {
	ms, err := h.service.ListMeasurements(ctx, c.Query("hazardId"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, ms)
}
