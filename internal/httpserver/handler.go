package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"agentpacks-registry/internal/auth"
	authUsecase "agentpacks-registry/internal/auth/usecase"
	"agentpacks-registry/internal/middleware"
	"agentpacks-registry/internal/model"
)

func (srv HTTPServer) mapHandlers() error {
	authUC := authUsecase.New(srv.l, srv.store, srv.authCfg)
	mw := middleware.New(srv.l, authUC, srv.generalLimiter, srv.metrics)

	srv.registerMiddlewares(mw)
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(mw, authUC); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares(mw middleware.Middleware) {
	srv.gin.Use(gin.Recovery(), mw.RequestID(), mw.AccessLog())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "Server mode: production")
	} else {
		srv.l.Infof(ctx, "Server mode: %s", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
	srv.gin.GET("/metrics", gin.WrapH(srv.metrics.Handler()))

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes under /api/v1.
// The general rate limiter covers the whole group.
func (srv HTTPServer) registerDomainRoutes(mw middleware.Middleware, authUC auth.UseCase) error {
	ctx := context.Background()
	api := srv.gin.Group("/api/v1", mw.RateLimit())

	hooks := srv.setupWebhookDomain(ctx, api, mw)
	srv.setupPackDomain(ctx, api, mw, authUC, hooks)
	srv.setupReviewDomain(ctx, api, mw)

	return nil
}
