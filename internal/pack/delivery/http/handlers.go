package http

import (
	"github.com/gin-gonic/gin"

	"agentpacks-registry/internal/pack"
	"agentpacks-registry/pkg/response"
	"agentpacks-registry/pkg/scope"
)

// Publish godoc
// @Summary     Publish a pack version
// @Description Multipart upload: "tarball" file plus "metadata" JSON {name, version, manifest}.
// @Description Checks run in order: auth, publish rate limit, size, name policy, version, manifest.
// @Tags        Packs
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       tarball  formData file   true "Pack tarball"
// @Param       metadata formData string true "JSON metadata"
// @Success     201 {object} publishResp
// @Failure     400 {object} response.Resp "Invalid name, version or manifest"
// @Failure     401 {object} response.Resp "Unauthenticated"
// @Failure     403 {object} response.Resp "Not the author or insufficient scope"
// @Failure     409 {object} response.Resp "Version already published"
// @Failure     413 {object} response.Resp "Tarball exceeds maximum size"
// @Failure     429 {object} response.Resp "Publish rate limit exceeded"
// @Router      /api/v1/packs [POST]
func (h *handler) Publish(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processPublishReq(c)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	output, err := h.uc.Publish(ctx, req.toInput())
	if output.RateLimit != nil {
		for k, v := range output.RateLimit.Headers() {
			c.Header(k, v)
		}
	}
	if err != nil {
		h.l.Warnf(ctx, "pack.http.Publish: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.Created(c, h.newPublishResp(output))
}

// Detail godoc
// @Summary     Get a pack
// @Tags        Packs
// @Produce     json
// @Param       name path string true "Pack name"
// @Success     200 {object} packResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/packs/{name} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := h.uc.Detail(ctx, c.Param("name"))
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newPackResp(p))
}

// Deprecate godoc
// @Summary     Set or clear deprecation
// @Description Only the pack author may call this. Clearing deprecation also clears the message.
// @Tags        Packs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       name path string       true "Pack name"
// @Param       body body deprecateReq true "Deprecation state"
// @Success     200 {object} deprecateResp
// @Failure     401 {object} response.Resp "Unauthenticated"
// @Failure     403 {object} response.Resp "Not the author"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/packs/{name}/deprecate [POST]
func (h *handler) Deprecate(c *gin.Context) {
	ctx := c.Request.Context()
	sc, _ := scope.GetScopeFromContext(ctx)

	req, err := h.processDeprecateReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	p, err := h.uc.Deprecate(ctx, sc, req.toInput())
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newDeprecateResp(p))
}

// ListVersions godoc
// @Summary     List versions of a pack
// @Tags        Packs
// @Produce     json
// @Param       name path string true "Pack name"
// @Success     200 {object} listVersionsResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/packs/{name}/versions [GET]
func (h *handler) ListVersions(c *gin.Context) {
	ctx := c.Request.Context()

	versions, err := h.uc.ListVersions(ctx, c.Param("name"))
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListVersionsResp(versions))
}

// Yank godoc
// @Summary     Yank a version
// @Tags        Packs
// @Produce     json
// @Security    BearerAuth
// @Param       name    path string true "Pack name"
// @Param       version path string true "Version"
// @Success     200 {object} yankResp
// @Failure     401 {object} response.Resp "Unauthenticated"
// @Failure     403 {object} response.Resp "Not the author"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/packs/{name}/versions/{version} [DELETE]
func (h *handler) Yank(c *gin.Context) {
	ctx := c.Request.Context()
	sc, _ := scope.GetScopeFromContext(ctx)

	v, err := h.uc.Yank(ctx, sc, pack.YankInput{Name: c.Param("name"), Version: c.Param("version")})
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newYankResp(v))
}
