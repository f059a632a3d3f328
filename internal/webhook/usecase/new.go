package usecase

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"agentpacks-registry/internal/model"
	"agentpacks-registry/internal/webhook/repository"
	"agentpacks-registry/pkg/log"
	"agentpacks-registry/pkg/metrics"
)

const (
	defaultDeliveryTimeout = 5 * time.Second
	defaultMaxConcurrency  = 8
)

// PackReader is the slice of the pack catalog the webhook domain needs.
type PackReader interface {
	GetPack(ctx context.Context, name string) (model.Pack, error)
}

// Poster sends one webhook body. pkg/hookclient.Client satisfies it.
type Poster interface {
	Post(ctx context.Context, url string, headers map[string]string, body []byte) (int, error)
}

// Config tunes outbound delivery.
type Config struct {
	DeliveryTimeout time.Duration
	MaxConcurrency  int
	// MaxDeliveriesPerSecond paces outbound calls across all dispatches; <= 0 disables pacing.
	MaxDeliveriesPerSecond int
}

type implUseCase struct {
	l       log.Logger
	repo    repository.Repository
	packs   PackReader
	client  Poster
	pace    *rate.Limiter
	metrics *metrics.Metrics
	cfg     Config
	now     func() time.Time
}

// New creates a webhook UseCase covering both the registry and the dispatcher.
func New(l log.Logger, repo repository.Repository, packs PackReader, client Poster, m *metrics.Metrics, cfg Config) *implUseCase {
	if cfg.DeliveryTimeout <= 0 {
		cfg.DeliveryTimeout = defaultDeliveryTimeout
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = defaultMaxConcurrency
	}

	uc := &implUseCase{
		l:       l,
		repo:    repo,
		packs:   packs,
		client:  client,
		metrics: m,
		cfg:     cfg,
		now:     time.Now,
	}
	if cfg.MaxDeliveriesPerSecond > 0 {
		uc.pace = rate.NewLimiter(rate.Limit(cfg.MaxDeliveriesPerSecond), cfg.MaxDeliveriesPerSecond)
	}
	return uc
}
