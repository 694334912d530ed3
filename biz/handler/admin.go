package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
)

// RunLegacyMigration triggers the legacy data migration job. The router wraps
// this endpoint in the distributed migration lock when Redis is enabled.
func (h *SurveyHandler) RunLegacyMigration(ctx context.Context, c *app.RequestContext) {
	summary, err := h.service.RunLegacyMigration(ctx, actorFrom(ctx))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, summary)
}

// ListAudit returns the most recent audit records, optionally filtered by
// entityType/entityId query parameters.
func (h *SurveyHandler) ListAudit(ctx context.Context, c *app.RequestContext) {
	records, err := h.service.ListAudit(ctx,
		c.Query("entityType"), c.Query("entityId"), intQuery(c, "limit", 100))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, records)
}

// Dashboard returns the aggregate reporting payload.
func (h *SurveyHandler) Dashboard(ctx context.Context, c *app.RequestContext) {
	aggregates, err := h.service.Dashboard(ctx, c.Query("companyId"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, aggregates)
}
