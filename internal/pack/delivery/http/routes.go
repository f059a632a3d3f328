package http

import (
	"github.com/gin-gonic/gin"

	"agentpacks-registry/internal/middleware"
)

// RegisterRoutes maps pack routes. Publish is authenticated by mw.Auth() before the
// body is read, and again inside the gatekeeper (a cache hit) so its checks keep their order.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	packs := rg.Group("/packs")
	{
		packs.POST("", mw.Auth(), h.Publish)
		packs.GET("/:name", h.Detail)
		packs.POST("/:name/deprecate", mw.Auth(), h.Deprecate)
		packs.GET("/:name/versions", h.ListVersions)
		packs.DELETE("/:name/versions/:version", mw.Auth(), h.Yank)
	}
}
