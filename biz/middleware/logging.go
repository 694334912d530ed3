package middleware

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/vivasst/risk_survey/pkg/common"
)

// Logging returns a middleware that logs request and response information,
// tagged with the acting survey user when one is identified.
func Logging() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()

		c.Next(ctx)

		latency := time.Since(start)
		method := string(c.Request.Method())
		path := string(c.Request.URI().Path())
		statusCode := c.Response.StatusCode()
		clientIP := c.ClientIP()

		actorID := "-"
		if actor, ok := common.ActorFromContext(ctx); ok {
			actorID = actor.ID
		}

		hlog.CtxInfof(ctx, "[%s] actor=%s %s %s %d %v",
			clientIP,
			actorID,
			method,
			path,
			statusCode,
			latency,
		)
	}
}
