package repository

import (
	"context"

	"agentpacks-registry/internal/model"
)

// Repository is the composed interface for the pack catalog data store.
type Repository interface {
	PackRepository
	VersionRepository
}

// PackRepository owns Pack rows, including the cached rating and deprecation fields.
type PackRepository interface {
	// GetPack returns the zero value when the pack does not exist.
	GetPack(ctx context.Context, name string) (model.Pack, error)
	// UpsertFromPublish creates the pack on first publish and records the new version atomically.
	// Returns ErrAuthorMismatch or ErrVersionExists without writing anything.
	UpsertFromPublish(ctx context.Context, opt UpsertFromPublishOptions) (model.Pack, model.PackVersion, error)
	SetDeprecation(ctx context.Context, opt SetDeprecationOptions) (model.Pack, error)
	// RecomputeRatingCache rebuilds average_rating and review_count from the review set.
	RecomputeRatingCache(ctx context.Context, name string) (model.Pack, error)
}

// VersionRepository owns PackVersion rows.
type VersionRepository interface {
	GetVersion(ctx context.Context, packName, version string) (model.PackVersion, error)
	ListVersions(ctx context.Context, packName string) ([]model.PackVersion, error)
	YankVersion(ctx context.Context, packName, version string) (model.PackVersion, error)
}
