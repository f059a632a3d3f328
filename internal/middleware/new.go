package middleware

import (
	"agentpacks-registry/internal/auth"
	"agentpacks-registry/pkg/log"
	"agentpacks-registry/pkg/metrics"
	"agentpacks-registry/pkg/ratelimit"
)

type Middleware struct {
	l       log.Logger
	authUC  auth.UseCase
	limiter *ratelimit.Limiter
	metrics *metrics.Metrics
}

// New creates the shared middleware set. limiter and m may be nil.
func New(l log.Logger, authUC auth.UseCase, limiter *ratelimit.Limiter, m *metrics.Metrics) Middleware {
	return Middleware{
		l:       l,
		authUC:  authUC,
		limiter: limiter,
		metrics: m,
	}
}
