package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"agentpacks-registry/internal/auth"
	"agentpacks-registry/pkg/response"
	"agentpacks-registry/pkg/scope"
)

// Auth requires a valid bearer token and stores the resolved scope in the request context.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token, ok := auth.ParseBearer(c.GetHeader("Authorization"))
		if !ok {
			response.Unauthorized(c, "Missing or malformed bearer token")
			return
		}

		sc, err := m.authUC.Verify(ctx, token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrMissingToken) {
				response.Unauthorized(c, "Invalid token")
				return
			}
			m.l.Errorf(ctx, "middleware.Auth.Verify: %v", err)
			response.Error(c, err)
			return
		}

		c.Request = c.Request.WithContext(scope.SetScopeToContext(ctx, sc))
		c.Next()
	}
}
