package review

import (
	"context"

	"agentpacks-registry/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Upsert creates or overwrites the caller's review and refreshes the pack's rating cache.
	Upsert(ctx context.Context, sc model.Scope, input UpsertInput) (model.Review, error)
	List(ctx context.Context, input ListInput) (ListOutput, error)
	// Delete reports whether a review was removed.
	Delete(ctx context.Context, sc model.Scope, packName string) (bool, error)
	// GetUserReview returns the zero value when the caller has not reviewed the pack.
	GetUserReview(ctx context.Context, sc model.Scope, packName string) (model.Review, error)
}
