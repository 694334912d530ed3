package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/vivasst/risk_survey/biz/model/api"
)

// ---- Environments ----

func (h *SurveyHandler) CreateEnvironment(ctx context.Context, c *app.RequestContext) {
	var input api.EnvironmentInput
	if err := c.BindJSON(&input); err != nil {
		RespondError(c, err)
		return
	}
	env, err := h.service.CreateEnvironment(ctx, actorFrom(ctx), &input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, env)
}

func (h *SurveyHandler) UpdateEnvironment(ctx context.Context, c *app.RequestContext) {
	var input api.EnvironmentInput
	if err := c.BindJSON(&input); err != nil {
		RespondError(c, err)
		return
	}
	env, err := h.service.UpdateEnvironment(ctx, actorFrom(ctx), c.Param("id"), &input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, env)
}

func (h *SurveyHandler) DeleteEnvironment(ctx context.Context, c *app.RequestContext) {
	if err := h.service.DeleteEnvironment(ctx, actorFrom(ctx), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, nil)
}

func (h *SurveyHandler) GetEnvironment(ctx context.Context, c *app.RequestContext) {
	env, err := h.service.GetEnvironment(ctx, c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, env)
}

func (h *SurveyHandler) ListEnvironments(ctx context.Context, c *app.RequestContext) {
	envs, err := h.service.ListEnvironments(ctx, c.Query("companyId"), c.Query("status"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, envs)
}

func (h *SurveyHandler) FinalizeEnvironment(ctx context.Context, c *app.RequestContext) {
	snapshot, err := h.service.FinalizeEnvironment(ctx, actorFrom(ctx), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, snapshot)
}

func (h *SurveyHandler) GetSnapshot(ctx context.Context, c *app.RequestContext) {
	snapshot, err := h.service.GetSnapshot(ctx, c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, snapshot)
}

// ---- Job roles ----

func (h *SurveyHandler) CreateJobRole(ctx context.Context, c *app.RequestContext) {
	var input api.JobRoleInput
	if err := c.BindJSON(&input); err != nil {
		RespondError(c, err)
		return
	}
	role, err := h.service.CreateJobRole(ctx, actorFrom(ctx), &input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, role)
}

func (h *SurveyHandler) UpdateJobRole(ctx context.Context, c *app.RequestContext) {
	var input api.JobRoleInput
	if err := c.BindJSON(&input); err != nil {
		RespondError(c, err)
		return
	}
	role, err := h.service.UpdateJobRole(ctx, actorFrom(ctx), c.Param("id"), &input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, role)
}

func (h *SurveyHandler) DeleteJobRole(ctx context.Context, c *app.RequestContext) {
	if err := h.service.DeleteJobRole(ctx, actorFrom(ctx), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, nil)
}

func (h *SurveyHandler) GetJobRole(ctx context.Context, c *app.RequestContext) {
	role, err := h.service.GetJobRole(ctx, c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, role)
}

func (h *SurveyHandler) ListJobRoles(ctx context.Context, c *app.RequestContext) {
	roles, err := h.service.ListJobRoles(ctx, c.Query("environmentId"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, roles)
}

// ---- Activities ----

func (h *SurveyHandler) CreateActivity(ctx context.Context, c *app.RequestContext) {
	var input api.ActivityInput
	if err := c.BindJSON(&input); err != nil {
		RespondError(c, err)
		return
	}
	act, err := h.service.CreateActivity(ctx, actorFrom(ctx), &input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, act)
}

func (h *SurveyHandler) UpdateActivity(ctx context.Context, c *app.RequestContext) {
	var input api.ActivityInput
	if err := c.BindJSON(&input); err != nil {
		RespondError(c, err)
		return
	}
	act, err := h.service.UpdateActivity(ctx, actorFrom(ctx), c.Param("id"), &input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, act)
}

func (h *SurveyHandler) DeleteActivity(ctx context.Context, c *app.RequestContext) {
	if err := h.service.DeleteActivity(ctx, actorFrom(ctx), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, nil)
}

func (h *SurveyHandler) GetActivity(ctx context.Context, c *app.RequestContext) {
	act, err := h.service.GetActivity(ctx, c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, act)
}

func (h *SurveyHandler) ListActivities(ctx context.Context, c *app.RequestContext) {
	acts, err := h.service.ListActivities(ctx, c.Query("environmentId"), c.Query("jobRoleId"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, acts)
}
