package usecase

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"agentpacks-registry/internal/auth/repository"
	"agentpacks-registry/internal/model"
	"agentpacks-registry/pkg/log"
)

const (
	defaultCacheSize = 1024
	defaultCacheTTL  = 30 * time.Second
)

// Config tunes the verification cache. A zero TTL disables caching.
type Config struct {
	CacheSize int
	CacheTTL  time.Duration
}

type implUseCase struct {
	l     log.Logger
	repo  repository.Repository
	cache *expirable.LRU[string, model.Scope]
}

// New creates a new auth UseCase.
func New(l log.Logger, repo repository.Repository, cfg Config) *implUseCase {
	uc := &implUseCase{
		l:    l,
		repo: repo,
	}
	if cfg.CacheTTL > 0 {
		size := cfg.CacheSize
		if size <= 0 {
			size = defaultCacheSize
		}
		uc.cache = expirable.NewLRU[string, model.Scope](size, nil, cfg.CacheTTL)
	}
	return uc
}

// DefaultConfig returns the cache settings used when none are configured.
func DefaultConfig() Config {
	return Config{CacheSize: defaultCacheSize, CacheTTL: defaultCacheTTL}
}
