package http

import (
	"github.com/gin-gonic/gin"

	pkgErrors "agentpacks-registry/pkg/errors"
)

func (h *handler) processListReq(c *gin.Context) (listReq, error) {
	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, pkgErrors.NewValidation(codeInvalidRequest, "limit and offset must be integers")
	}
	return req, nil
}

func (h *handler) processUpsertReq(c *gin.Context) (upsertReq, error) {
	var req upsertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, pkgErrors.NewValidation(codeInvalidRequest, "body must be {\"rating\": int, \"comment\"?: string}")
	}
	return req, nil
}
