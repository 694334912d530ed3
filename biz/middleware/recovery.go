package middleware

import (
	"context"
	"runtime/debug"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/vivasst/risk_survey/pkg/common"
)

// Recovery returns a middleware that recovers from panics and logs the error.
// The panic value stays in the log; clients only see the generic envelope.
func Recovery() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				stack := debug.Stack()
				hlog.CtxErrorf(ctx, "panic recovered: %v\n%s", err, string(stack))

				c.JSON(consts.StatusInternalServerError, common.CommonResponse{
					Code:  consts.StatusInternalServerError,
					Msg:   "INTERNAL_ERROR",
					Error: "internal server error",
				})
				c.Abort()
			}
		}()

		c.Next(ctx)
	}
}
