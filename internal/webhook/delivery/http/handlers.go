package http

import (
	"github.com/gin-gonic/gin"

	"agentpacks-registry/internal/webhook"
	"agentpacks-registry/pkg/response"
	"agentpacks-registry/pkg/scope"
)

// Create godoc
// @Summary     Register a webhook
// @Tags        Webhooks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       name path string    true "Pack name"
// @Param       body body createReq true "Subscription"
// @Success     201 {object} webhookResp
// @Failure     400 {object} response.Resp "Invalid url or events"
// @Failure     401 {object} response.Resp "Unauthenticated"
// @Failure     403 {object} response.Resp "Not the author"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/packs/{name}/webhooks [POST]
func (h *handler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	sc, _ := scope.GetScopeFromContext(ctx)

	req, err := h.processCreateReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	w, err := h.uc.Create(ctx, sc, req.toInput(c.Param("name")))
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.Created(c, newWebhookResp(w))
}

// List godoc
// @Summary     List a pack's webhooks
// @Tags        Webhooks
// @Produce     json
// @Security    BearerAuth
// @Param       name path string true "Pack name"
// @Success     200 {object} listResp
// @Failure     401 {object} response.Resp "Unauthenticated"
// @Failure     403 {object} response.Resp "Not the author"
// @Router      /api/v1/packs/{name}/webhooks [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()
	sc, _ := scope.GetScopeFromContext(ctx)

	hooks, err := h.uc.List(ctx, sc, c.Param("name"))
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListResp(hooks))
}

// Update godoc
// @Summary     Update a webhook
// @Tags        Webhooks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       name path string    true "Pack name"
// @Param       id   path string    true "Webhook ID"
// @Param       body body updateReq true "Fields to change"
// @Success     200 {object} webhookResp
// @Failure     400 {object} response.Resp "Invalid url or events"
// @Failure     401 {object} response.Resp "Unauthenticated"
// @Failure     403 {object} response.Resp "Not the author"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/packs/{name}/webhooks/{id} [PATCH]
func (h *handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	sc, _ := scope.GetScopeFromContext(ctx)

	req, err := h.processUpdateReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	w, err := h.uc.Update(ctx, sc, req.toInput(c.Param("name"), c.Param("id")))
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newWebhookResp(w))
}

// Delete godoc
// @Summary     Delete a webhook
// @Tags        Webhooks
// @Produce     json
// @Security    BearerAuth
// @Param       name path string true "Pack name"
// @Param       id   path string true "Webhook ID"
// @Success     200 {object} deleteResp
// @Failure     401 {object} response.Resp "Unauthenticated"
// @Failure     403 {object} response.Resp "Not the author"
// @Router      /api/v1/packs/{name}/webhooks/{id} [DELETE]
func (h *handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	sc, _ := scope.GetScopeFromContext(ctx)

	deleted, err := h.uc.Delete(ctx, sc, c.Param("name"), c.Param("id"))
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, deleteResp{Deleted: deleted})
}

// ListDeliveries godoc
// @Summary     Delivery log of a webhook
// @Description Newest first.
// @Tags        Webhooks
// @Produce     json
// @Security    BearerAuth
// @Param       name  path  string true  "Pack name"
// @Param       id    path  string true  "Webhook ID"
// @Param       limit query int    false "Max rows (default 50, max 200)"
// @Success     200 {object} listDeliveriesResp
// @Failure     401 {object} response.Resp "Unauthenticated"
// @Failure     403 {object} response.Resp "Not the author"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/packs/{name}/webhooks/{id}/deliveries [GET]
func (h *handler) ListDeliveries(c *gin.Context) {
	ctx := c.Request.Context()
	sc, _ := scope.GetScopeFromContext(ctx)

	req, err := h.processDeliveriesReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	ds, err := h.uc.ListDeliveries(ctx, sc, webhook.ListDeliveriesInput{
		PackName:  c.Param("name"),
		WebhookID: c.Param("id"),
		Limit:     req.Limit,
	})
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListDeliveriesResp(ds))
}
