package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/vivasst/risk_survey/pkg/common"
)

// Auth returns a middleware that extracts actor information from request
// headers and adds it to the context. This middleware does NOT enforce
// authentication, it only enriches the context when headers are present.
// Authentication itself is handled upstream of this service.
func Auth() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		actor := common.Actor{
			ID:    string(c.GetHeader("X-User-Id")),
			Name:  string(c.GetHeader("X-User-Name")),
			Email: string(c.GetHeader("X-User-Email")),
			Role:  string(c.GetHeader("X-User-Role")),
		}
		if actor.ID != "" {
			ctx = common.ContextWithActor(ctx, actor)
		}
		c.Next(ctx)
	}
}

// RequireAuth returns a middleware that enforces an identified actor.
// Requests without an X-User-Id header are rejected with 401.
func RequireAuth() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		userHeader := c.GetHeader("X-User-Id")
		if len(userHeader) == 0 {
			c.JSON(401, map[string]any{
				"code":  401,
				"error": "authentication required",
				"msg":   "missing X-User-Id header",
			})
			c.Abort()
			return
		}

		actor := common.Actor{
			ID:    string(userHeader),
			Name:  string(c.GetHeader("X-User-Name")),
			Email: string(c.GetHeader("X-User-Email")),
			Role:  string(c.GetHeader("X-User-Role")),
		}
		ctx = common.ContextWithActor(ctx, actor)
		c.Next(ctx)
	}
}

// RequirePermission returns a middleware that asks the authorization
// collaborator whether the actor's role holds the given permission string
// (e.g. "riskSurvey:write"). A nil checker allows everything.
func RequirePermission(check common.PermissionChecker, permission string) app.HandlerFunc {
	if check == nil {
		check = common.AllowAll
	}
	return func(ctx context.Context, c *app.RequestContext) {
		actor, _ := common.ActorFromContext(ctx)
		if !check(actor.Role, permission) {
			c.JSON(403, map[string]any{
				"code":  403,
				"error": "forbidden",
				"msg":   "missing permission " + permission,
			})
			c.Abort()
			return
		}
		c.Next(ctx)
	}
}

// RequireFeature returns a middleware that gates a route group behind a
// feature flag. A nil checker keeps the feature enabled.
func RequireFeature(check common.FeatureChecker, flag string) app.HandlerFunc {
	if check == nil {
		check = common.AlwaysOn
	}
	return func(ctx context.Context, c *app.RequestContext) {
		if !check(flag) {
			c.JSON(404, map[string]any{
				"code":  404,
				"error": "feature disabled",
				"msg":   "feature " + flag + " is not enabled",
			})
			c.Abort()
			return
		}
		c.Next(ctx)
	}
}
