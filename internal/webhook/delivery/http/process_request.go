package http

import (
	"github.com/gin-gonic/gin"

	pkgErrors "agentpacks-registry/pkg/errors"
)

func (h *handler) processCreateReq(c *gin.Context) (createReq, error) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, pkgErrors.NewValidation(codeInvalidRequest, "body must be {\"url\": string, \"secret\"?: string, \"events\": [string]}")
	}
	return req, nil
}

func (h *handler) processUpdateReq(c *gin.Context) (updateReq, error) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, pkgErrors.NewValidation(codeInvalidRequest, "body must be a JSON object")
	}
	return req, nil
}

func (h *handler) processDeliveriesReq(c *gin.Context) (deliveriesReq, error) {
	var req deliveriesReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, pkgErrors.NewValidation(codeInvalidRequest, "limit must be an integer")
	}
	return req, nil
}
