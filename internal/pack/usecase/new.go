package usecase

import (
	"time"

	"agentpacks-registry/internal/auth"
	"agentpacks-registry/internal/pack"
	"agentpacks-registry/internal/pack/repository"
	"agentpacks-registry/internal/webhook"
	"agentpacks-registry/pkg/blobstore"
	"agentpacks-registry/pkg/log"
	"agentpacks-registry/pkg/metrics"
	"agentpacks-registry/pkg/ratelimit"
)

const defaultNotifyTimeout = time.Minute

// Config holds the publish policy knobs.
type Config struct {
	MaxTarballBytes int64
	ReservedNames   []string
	// NotifyTimeout bounds one asynchronous webhook dispatch.
	NotifyTimeout time.Duration
}

// Deps are the collaborators of the pack usecase.
type Deps struct {
	Repo           repository.Repository
	Auth           auth.UseCase
	PublishLimiter *ratelimit.Limiter
	Blobs          blobstore.Store
	Dispatcher     webhook.Dispatcher
	Metrics        *metrics.Metrics
}

type implUseCase struct {
	l        log.Logger
	repo     repository.Repository
	authUC   auth.UseCase
	limiter  *ratelimit.Limiter
	blobs    blobstore.Store
	notifier webhook.Dispatcher
	metrics  *metrics.Metrics
	names    pack.NamePolicy
	cfg      Config
}

// New creates a new pack UseCase.
func New(l log.Logger, deps Deps, cfg Config) *implUseCase {
	if cfg.MaxTarballBytes <= 0 {
		cfg.MaxTarballBytes = pack.DefaultMaxTarballBytes
	}
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = defaultNotifyTimeout
	}
	return &implUseCase{
		l:        l,
		repo:     deps.Repo,
		authUC:   deps.Auth,
		limiter:  deps.PublishLimiter,
		blobs:    deps.Blobs,
		notifier: deps.Dispatcher,
		metrics:  deps.Metrics,
		names:    pack.NewNamePolicy(cfg.ReservedNames),
		cfg:      cfg,
	}
}
