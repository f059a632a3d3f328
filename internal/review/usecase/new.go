package usecase

import (
	"context"

	"agentpacks-registry/internal/model"
	"agentpacks-registry/internal/review/repository"
	"agentpacks-registry/pkg/log"
	"agentpacks-registry/pkg/metrics"
)

// PackReader is the slice of the pack catalog reviews depend on.
type PackReader interface {
	GetPack(ctx context.Context, name string) (model.Pack, error)
}

type implUseCase struct {
	l       log.Logger
	repo    repository.Repository
	packs   PackReader
	metrics *metrics.Metrics
}

// New creates a new review UseCase.
func New(l log.Logger, repo repository.Repository, packs PackReader, m *metrics.Metrics) *implUseCase {
	return &implUseCase{
		l:       l,
		repo:    repo,
		packs:   packs,
		metrics: m,
	}
}
