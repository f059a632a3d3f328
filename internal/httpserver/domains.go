package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"agentpacks-registry/internal/auth"
	"agentpacks-registry/internal/middleware"
	packHTTP "agentpacks-registry/internal/pack/delivery/http"
	packUC "agentpacks-registry/internal/pack/usecase"
	reviewHTTP "agentpacks-registry/internal/review/delivery/http"
	reviewUC "agentpacks-registry/internal/review/usecase"
	"agentpacks-registry/internal/webhook"
	webhookHTTP "agentpacks-registry/internal/webhook/delivery/http"
	webhookUC "agentpacks-registry/internal/webhook/usecase"
)

// setupWebhookDomain registers /packs/:name/webhooks and returns the dispatcher
// that the pack domain notifies.
func (srv HTTPServer) setupWebhookDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) webhook.Dispatcher {
	uc := webhookUC.New(srv.l, srv.store, srv.store, srv.hookClient, srv.metrics, srv.webhookCfg)
	h := webhookHTTP.New(srv.l, uc)
	webhookHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Webhook domain registered")
	return uc
}

// setupPackDomain registers /packs, /packs/:name, deprecation and versions.
func (srv HTTPServer) setupPackDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware, authUC auth.UseCase, dispatcher webhook.Dispatcher) {
	uc := packUC.New(srv.l, packUC.Deps{
		Repo:           srv.store,
		Auth:           authUC,
		PublishLimiter: srv.publishLimiter,
		Blobs:          srv.blobs,
		Dispatcher:     dispatcher,
		Metrics:        srv.metrics,
	}, srv.packCfg)
	h := packHTTP.New(srv.l, uc, srv.packCfg.MaxTarballBytes)
	packHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Pack domain registered")
}

// setupReviewDomain registers /packs/:name/reviews.
func (srv HTTPServer) setupReviewDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) {
	uc := reviewUC.New(srv.l, srv.store, srv.store, srv.metrics)
	h := reviewHTTP.New(srv.l, uc)
	reviewHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Review domain registered")
}
