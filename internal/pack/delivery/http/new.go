package http

import (
	"github.com/gin-gonic/gin"

	"agentpacks-registry/internal/pack"
	"agentpacks-registry/pkg/log"
)

// Handler is the public interface for the pack HTTP delivery layer.
type Handler interface {
	Publish(c *gin.Context)
	Detail(c *gin.Context)
	Deprecate(c *gin.Context)
	ListVersions(c *gin.Context)
	Yank(c *gin.Context)
}

type handler struct {
	l        log.Logger
	uc       pack.UseCase
	maxBytes int64
}

// New creates a new HTTP handler for the pack domain.
func New(l log.Logger, uc pack.UseCase, maxTarballBytes int64) *handler {
	if maxTarballBytes <= 0 {
		maxTarballBytes = pack.DefaultMaxTarballBytes
	}
	return &handler{
		l:        l,
		uc:       uc,
		maxBytes: maxTarballBytes,
	}
}
