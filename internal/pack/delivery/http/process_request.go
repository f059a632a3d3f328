package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"agentpacks-registry/internal/auth"
	pkgErrors "agentpacks-registry/pkg/errors"
)

// multipartOverhead is the body allowance on top of the tarball for boundaries and metadata.
const multipartOverhead = 1 << 20

// processPublishReq reads the multipart body. The tarball is read up to one byte past
// the limit so the size check itself happens in the gatekeeper, after authentication.
func (h *handler) processPublishReq(c *gin.Context) (publishReq, error) {
	var req publishReq

	token, ok := auth.ParseBearer(c.GetHeader("Authorization"))
	if !ok {
		return req, auth.ErrMissingToken
	}
	req.Token = token

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)

	fh, err := c.FormFile("tarball")
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return req, h.tooLarge()
		}
		return req, pkgErrors.NewValidation(codeMissingTarball, "multipart field \"tarball\" is required")
	}

	f, err := fh.Open()
	if err != nil {
		return req, err
	}
	defer f.Close()

	req.Tarball, err = io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		return req, err
	}

	raw := c.PostForm("metadata")
	if raw == "" {
		return req, pkgErrors.NewValidation(codeInvalidRequest, "multipart field \"metadata\" is required")
	}
	if err := json.Unmarshal([]byte(raw), &req.Metadata); err != nil {
		return req, pkgErrors.NewValidation(codeInvalidRequest, "metadata must be a JSON object")
	}
	return req, nil
}

// processDeprecateReq binds the deprecate body and URI param.
func (h *handler) processDeprecateReq(c *gin.Context) (deprecateReq, error) {
	var req deprecateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, pkgErrors.NewValidation(codeInvalidRequest, "body must be {\"deprecated\": bool, \"message\"?: string}")
	}
	req.Name = c.Param("name")
	return req, nil
}
