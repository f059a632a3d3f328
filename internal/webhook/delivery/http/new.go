package http

import (
	"github.com/gin-gonic/gin"

	"agentpacks-registry/internal/webhook"
	"agentpacks-registry/pkg/log"
)

type Handler interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	ListDeliveries(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc webhook.UseCase
}

// New creates a new HTTP handler for webhook registration.
func New(l log.Logger, uc webhook.UseCase) *handler {
	return &handler{l: l, uc: uc}
}
