package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"agentpacks-registry/config"
	pgConfig "agentpacks-registry/config/postgre"
	_ "agentpacks-registry/docs" // Swagger docs
	authUC "agentpacks-registry/internal/auth/usecase"
	"agentpacks-registry/internal/httpserver"
	packUC "agentpacks-registry/internal/pack/usecase"
	"agentpacks-registry/internal/storage/memory"
	"agentpacks-registry/internal/storage/postgre"
	webhookUC "agentpacks-registry/internal/webhook/usecase"
	"agentpacks-registry/pkg/blobstore"
	"agentpacks-registry/pkg/hookclient"
	"agentpacks-registry/pkg/log"
	"agentpacks-registry/pkg/metrics"
	"agentpacks-registry/pkg/ratelimit"
)

// @title       Agent Packs Registry API
// @description Publish, review and subscribe to versioned agent packs.
// @version     1
// @host        localhost:8080
// @schemes     http
// @securityDefinitions.apikey BearerAuth
// @in          header
// @name        Authorization
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Agent Packs Registry...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Storage
	var store httpserver.Store
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := pgConfig.Connect(ctx, pgConfig.Config{DSN: cfg.Postgres.DSN, MaxConns: cfg.Postgres.MaxConns})
		if err != nil {
			logger.Error(ctx, "Failed to connect to PostgreSQL: ", err)
			return
		}
		defer pgConfig.Disconnect(pool)
		store = postgre.New(pool, logger)
		logger.Info(ctx, "Storage: postgres")
	default:
		store = memory.New()
		logger.Warn(ctx, "Storage: memory (data is lost on restart)")
	}

	blobs, err := blobstore.NewFS(cfg.Registry.BlobDir)
	if err != nil {
		logger.Error(ctx, "Failed to open blob store: ", err)
		return
	}

	// 4. Limiters and metrics
	generalLimiter := ratelimit.New(ratelimit.Config{
		Class:   ratelimit.ClassGeneral,
		Window:  cfg.RateLimit.General.Window,
		Max:     cfg.RateLimit.General.Max,
		MaxKeys: cfg.RateLimit.MaxKeys,
	})
	publishLimiter := ratelimit.New(ratelimit.Config{
		Class:   ratelimit.ClassPublish,
		Window:  cfg.RateLimit.Publish.Window,
		Max:     cfg.RateLimit.Publish.Max,
		MaxKeys: cfg.RateLimit.MaxKeys,
	})

	// 5. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,

		Store: store,
		Blobs: blobs,
		HookClient: hookclient.New(hookclient.Config{
			Timeout:   cfg.Webhook.DeliveryTimeout,
			UserAgent: cfg.Webhook.UserAgent,
		}),
		Metrics:        metrics.New(),
		GeneralLimiter: generalLimiter,
		PublishLimiter: publishLimiter,

		Auth: authUC.Config{CacheSize: cfg.Auth.CacheSize, CacheTTL: cfg.Auth.CacheTTL},
		Pack: packUC.Config{
			MaxTarballBytes: cfg.Registry.MaxTarballBytes,
			ReservedNames:   cfg.Registry.ReservedNames,
			NotifyTimeout:   cfg.Webhook.DispatchTimeout,
		},
		Webhook: webhookUC.Config{
			DeliveryTimeout:        cfg.Webhook.DeliveryTimeout,
			MaxConcurrency:         cfg.Webhook.MaxConcurrency,
			MaxDeliveriesPerSecond: cfg.Webhook.MaxDeliveriesPerSecond,
		},
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 6. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
