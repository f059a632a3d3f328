package http

import (
	"github.com/gin-gonic/gin"

	"agentpacks-registry/internal/review"
	"agentpacks-registry/pkg/log"
)

type Handler interface {
	List(c *gin.Context)
	Upsert(c *gin.Context)
	Delete(c *gin.Context)
	Me(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc review.UseCase
}

// New creates a new HTTP handler for reviews.
func New(l log.Logger, uc review.UseCase) *handler {
	return &handler{l: l, uc: uc}
}
