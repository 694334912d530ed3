package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/vivasst/risk_survey/biz/service"
	"github.com/vivasst/risk_survey/pkg/common"
)

// SurveyHandler exposes the survey engine over HTTP.
type SurveyHandler struct {
	service *service.Service
}

func NewSurveyHandler(svc *service.Service) *SurveyHandler {
	return &SurveyHandler{service: svc}
}

// Ping is the liveness probe.
func Ping(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, common.CommonResponse{Code: consts.StatusOK, Msg: "pong"})
}

// actorFrom returns the acting user, falling back to the system actor for
// requests that reached an unauthenticated route.
func actorFrom(ctx context.Context) common.Actor {
	if actor, ok := common.ActorFromContext(ctx); ok {
		return actor
	}
	return common.System()
}

// RespondOK writes a successful envelope with optional payload.
func RespondOK(c *app.RequestContext, data any) {
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code: consts.StatusOK,
		Msg:  http.StatusText(consts.StatusOK),
		Data: data,
	})
}

// RespondError maps a service error onto the response envelope. Typed errors
// carry their own status and machine-readable code; anything else is an
// internal error.
func RespondError(c *app.RequestContext, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		c.JSON(consts.StatusOK, common.CommonResponse{
			Code:  svcErr.Status,
			Msg:   svcErr.Code,
			Error: svcErr.Message,
		})
		return
	}
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code:  consts.StatusInternalServerError,
		Msg:   service.CodeInternal,
		Error: err.Error(),
	})
}

// boolQuery parses an optional bool query parameter; nil means absent.
func boolQuery(c *app.RequestContext, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

// intQuery parses an optional int query parameter with a default.
func intQuery(c *app.RequestContext, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
