package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/vivasst/risk_survey/biz/dal/model"
	"github.com/vivasst/risk_survey/biz/model/api"
)

// ---- Hazard library ----

func (h *SurveyHandler) CreateLibraryEntry(ctx context.Context, c *app.RequestContext) {
	var input api.LibraryInput
	if err := c.BindJSON(&input); err != nil {
		RespondError(c, err)
		return
	}
	entry, err := h.service.CreateLibraryEntry(ctx, actorFrom(ctx), &input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, entry)
}

func (h *SurveyHandler) UpdateLibraryEntry(ctx context.Context, c *app.RequestContext) {
	var input api.LibraryInput
	if err := c.BindJSON(&input); err != nil {
		RespondError(c, err)
		return
	}
	entry, err := h.service.UpdateLibraryEntry(ctx, actorFrom(ctx), c.Param("id"), &input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, entry)
}

func (h *SurveyHandler) DeactivateLibraryEntry(ctx context.Context, c *app.RequestContext) {
	if err := h.service.DeactivateLibraryEntry(ctx, actorFrom(ctx), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, nil)
}

func (h *SurveyHandler) GetLibraryEntry(ctx context.Context, c *app.RequestContext) {
	entry, err := h.service.GetLibraryEntry(ctx, c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, entry)
}

func (h *SurveyHandler) ListLibraryEntries(ctx context.Context, c *app.RequestContext) {
	entries, err := h.service.ListLibraryEntries(ctx, c.Query("type"), boolQuery(c, "active"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, entries)
}

// ---- Measurement devices ----

func (h *SurveyHandler) RegisterDevice(ctx context.Context, c *app.RequestContext) {
	var input api.DeviceInput
	if err := c.BindJSON(&input); err != nil {
		RespondError(c, err)
		return
	}
	device, err := h.service.RegisterDevice(ctx, actorFrom(ctx), &input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, device)
}

func (h *SurveyHandler) UpdateDevice(ctx context.Context, c *app.RequestContext) {
	var input api.DeviceInput
	if err := c.BindJSON(&input); err != nil {
		RespondError(c, err)
		return
	}
	device, err := h.service.UpdateDevice(ctx, actorFrom(ctx), c.Param("id"), &input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, device)
}

func (h *SurveyHandler) DeactivateDevice(ctx context.Context, c *app.RequestContext) {
	if err := h.service.DeactivateDevice(ctx, actorFrom(ctx), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, nil)
}

func (h *SurveyHandler) GetDevice(ctx context.Context, c *app.RequestContext) {
	device, err := h.service.GetDevice(ctx, c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, device)
}

func (h *SurveyHandler) ListDevices(ctx context.Context, c *app.RequestContext) {
	devices, err := h.service.ListDevices(ctx, boolQuery(c, "active"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, devices)
}

// ---- References and classification ranges ----

func (h *SurveyHandler) UpsertReference(ctx context.Context, c *app.RequestContext) {
	var input api.ReferenceInput
	if err := c.BindJSON(&input); err != nil {
		RespondError(c, err)
		return
	}
	ref, err := h.service.UpsertReference(ctx, actorFrom(ctx), &input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, ref)
}

func (h *SurveyHandler) ListReferences(ctx context.Context, c *app.RequestContext) {
	refs, err := h.service.ListReferences(ctx, boolQuery(c, "active"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, refs)
}

func (h *SurveyHandler) SaveClassificationRanges(ctx context.Context, c *app.RequestContext) {
	var ranges []model.ClassificationRange
	if err := c.BindJSON(&ranges); err != nil {
		RespondError(c, err)
		return
	}
	if err := h.service.SaveClassificationRanges(ctx, actorFrom(ctx), ranges); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, nil)
}

func (h *SurveyHandler) ListClassificationRanges(ctx context.Context, c *app.RequestContext) {
	ranges, err := h.service.ListClassificationRanges(ctx)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, ranges)
}
