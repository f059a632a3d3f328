package http

import (
	"github.com/gin-gonic/gin"

	"agentpacks-registry/internal/middleware"
)

// RegisterRoutes maps review routes under /packs/:name/reviews.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	reviews := rg.Group("/packs/:name/reviews")
	{
		reviews.GET("", h.List)
		reviews.POST("", mw.Auth(), h.Upsert)
		reviews.DELETE("", mw.Auth(), h.Delete)
		reviews.GET("/me", mw.Auth(), h.Me)
	}
}
