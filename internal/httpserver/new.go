package httpserver

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	authRepo "agentpacks-registry/internal/auth/repository"
	authUC "agentpacks-registry/internal/auth/usecase"
	packRepo "agentpacks-registry/internal/pack/repository"
	packUC "agentpacks-registry/internal/pack/usecase"
	reviewRepo "agentpacks-registry/internal/review/repository"
	webhookRepo "agentpacks-registry/internal/webhook/repository"
	webhookUC "agentpacks-registry/internal/webhook/usecase"
	"agentpacks-registry/pkg/blobstore"
	"agentpacks-registry/pkg/hookclient"
	"agentpacks-registry/pkg/log"
	"agentpacks-registry/pkg/metrics"
	"agentpacks-registry/pkg/ratelimit"
)

// Store is every repository the service needs plus a readiness probe.
// Both internal/storage/memory and internal/storage/postgre satisfy it.
type Store interface {
	authRepo.Repository
	packRepo.Repository
	reviewRepo.Repository
	webhookRepo.Repository
	Ping(ctx context.Context) error
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Infrastructure
	store          Store
	blobs          blobstore.Store
	hookClient     *hookclient.Client
	metrics        *metrics.Metrics
	generalLimiter *ratelimit.Limiter
	publishLimiter *ratelimit.Limiter

	// Domain policy
	authCfg    authUC.Config
	packCfg    packUC.Config
	webhookCfg webhookUC.Config
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	Store      Store
	Blobs      blobstore.Store
	HookClient *hookclient.Client
	// Metrics may be nil; /metrics then answers 404.
	Metrics        *metrics.Metrics
	GeneralLimiter *ratelimit.Limiter
	PublishLimiter *ratelimit.Limiter

	Auth    authUC.Config
	Pack    packUC.Config
	Webhook webhookUC.Config
}

// New creates a new HTTPServer instance with every route registered.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:              logger,
		gin:            gin.New(),
		port:           cfg.Port,
		mode:           cfg.Mode,
		environment:    cfg.Environment,
		store:          cfg.Store,
		blobs:          cfg.Blobs,
		hookClient:     cfg.HookClient,
		metrics:        cfg.Metrics,
		generalLimiter: cfg.GeneralLimiter,
		publishLimiter: cfg.PublishLimiter,
		authCfg:        cfg.Auth,
		packCfg:        cfg.Pack,
		webhookCfg:     cfg.Webhook,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	if srv.hookClient == nil {
		srv.hookClient = hookclient.New(hookclient.Config{Timeout: cfg.Webhook.DeliveryTimeout})
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}
	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.store == nil {
		return errors.New("store is required")
	}
	if srv.blobs == nil {
		return errors.New("blob store is required")
	}
	return nil
}
