package http

import (
	"github.com/gin-gonic/gin"

	"agentpacks-registry/internal/middleware"
)

// RegisterRoutes maps webhook routes under /packs/:name/webhooks. All of them require auth.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	hooks := rg.Group("/packs/:name/webhooks", mw.Auth())
	{
		hooks.POST("", h.Create)
		hooks.GET("", h.List)
		hooks.PATCH("/:id", h.Update)
		hooks.DELETE("/:id", h.Delete)
		hooks.GET("/:id/deliveries", h.ListDeliveries)
	}
}
