package http

import (
	"github.com/gin-gonic/gin"

	"agentpacks-registry/internal/review"
	"agentpacks-registry/pkg/response"
	"agentpacks-registry/pkg/scope"
)

// List godoc
// @Summary     List reviews of a pack
// @Description Creation order. average_rating is the plain mean to one decimal, null without reviews.
// @Tags        Reviews
// @Produce     json
// @Param       name   path  string true  "Pack name"
// @Param       limit  query int    false "Page size (default 20, max 100)"
// @Param       offset query int    false "Offset"
// @Success     200 {object} listResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/packs/{name}/reviews [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	out, err := h.uc.List(ctx, review.ListInput{PackName: c.Param("name"), Limit: req.Limit, Offset: req.Offset})
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListResp(out))
}

// Upsert godoc
// @Summary     Create or replace the caller's review
// @Tags        Reviews
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       name path string    true "Pack name"
// @Param       body body upsertReq true "Review"
// @Success     201 {object} reviewResp
// @Failure     400 {object} response.Resp "Invalid rating"
// @Failure     401 {object} response.Resp "Unauthenticated"
// @Failure     403 {object} response.Resp "Self-review"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/packs/{name}/reviews [POST]
func (h *handler) Upsert(c *gin.Context) {
	ctx := c.Request.Context()
	sc, _ := scope.GetScopeFromContext(ctx)

	req, err := h.processUpsertReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	r, err := h.uc.Upsert(ctx, sc, req.toInput(c.Param("name")))
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.Created(c, newReviewResp(r))
}

// Delete godoc
// @Summary     Delete the caller's review
// @Tags        Reviews
// @Produce     json
// @Security    BearerAuth
// @Param       name path string true "Pack name"
// @Success     200 {object} deleteResp
// @Failure     401 {object} response.Resp "Unauthenticated"
// @Router      /api/v1/packs/{name}/reviews [DELETE]
func (h *handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	sc, _ := scope.GetScopeFromContext(ctx)

	deleted, err := h.uc.Delete(ctx, sc, c.Param("name"))
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, deleteResp{Deleted: deleted})
}

// Me godoc
// @Summary     Get the caller's review
// @Tags        Reviews
// @Produce     json
// @Security    BearerAuth
// @Param       name path string true "Pack name"
// @Success     200 {object} meResp
// @Failure     401 {object} response.Resp "Unauthenticated"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/packs/{name}/reviews/me [GET]
func (h *handler) Me(c *gin.Context) {
	ctx := c.Request.Context()
	sc, _ := scope.GetScopeFromContext(ctx)

	r, err := h.uc.GetUserReview(ctx, sc, c.Param("name"))
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newMeResp(r))
}
