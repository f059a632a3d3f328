package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agentpacks-registry/internal/auth"
	pkgErrors "agentpacks-registry/pkg/errors"
	"agentpacks-registry/pkg/response"
)

// RateLimit applies the general limiter, keyed by token hash when the bearer verifies and by client IP otherwise.
func (m Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.limiter == nil {
			c.Next()
			return
		}

		res := m.limiter.Allow(m.subjectKey(c))
		for k, v := range res.Headers() {
			c.Header(k, v)
		}
		if !res.Allowed {
			m.metrics.ObserveRateLimited(m.limiter.Class())
			response.Error(c, pkgErrors.NewHTTPError(http.StatusTooManyRequests, "Rate limit exceeded, try again later"))
			return
		}
		c.Next()
	}
}

// subjectKey only trusts a bearer that resolves to a user; unverified strings
// would otherwise buy a fresh bucket per request.
func (m Middleware) subjectKey(c *gin.Context) string {
	token, ok := auth.ParseBearer(c.GetHeader("Authorization"))
	if ok && m.authUC != nil {
		if _, err := m.authUC.Verify(c.Request.Context(), token); err == nil {
			return "token:" + auth.HashToken(token)
		}
	}
	return "ip:" + c.ClientIP()
}
