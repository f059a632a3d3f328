package scope

import (
	"context"

	"agentpacks-registry/internal/model"
)

type ctxKey struct{}

// SetScopeToContext returns a copy of ctx carrying sc.
func SetScopeToContext(ctx context.Context, sc model.Scope) context.Context {
	return context.WithValue(ctx, ctxKey{}, sc)
}

// GetScopeFromContext returns the authenticated scope, if any.
func GetScopeFromContext(ctx context.Context) (model.Scope, bool) {
	sc, ok := ctx.Value(ctxKey{}).(model.Scope)
	if !ok || !sc.IsAuthenticated() {
		return model.Scope{}, false
	}
	return sc, true
}
