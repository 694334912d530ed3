package common

import (
	"context"
)

// CommonResponse is a lightweight response wrapper used by HTTP handlers.
type CommonResponse struct {
	Code  int         `json:"code"`
	Msg   string      `json:"msg,omitempty"`
	Error string      `json:"error,omitempty"`
	Data  interface{} `json:"data,omitempty"`
}

// Actor identifies the authenticated user performing an operation. The
// authentication layer itself lives outside this service; middleware fills
// the actor in from request headers.
type Actor struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// System returns the actor used for unattended maintenance operations.
func System() Actor {
	return Actor{ID: "system", Name: "system", Role: "system"}
}

type contextKey string

const actorKey contextKey = "actor"

// ContextWithActor stores the authenticated actor into context.
func ContextWithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext retrieves the authenticated actor from context.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	v := ctx.Value(actorKey)
	if v == nil {
		return Actor{}, false
	}
	actor, ok := v.(Actor)
	return actor, ok
}

// PermissionChecker answers whether a role holds a permission string such as
// "riskSurvey:write". Supplied by the authorization collaborator.
type PermissionChecker func(role, permission string) bool

// FeatureChecker answers whether a named feature flag is enabled.
type FeatureChecker func(flag string) bool

// AllowAll is the default permission checker used when no authorization
// collaborator is wired in.
func AllowAll(string, string) bool { return true }

// AlwaysOn is the default feature checker.
func AlwaysOn(string) bool { return true }
