package repository

import (
	"context"

	"agentpacks-registry/internal/model"
)

// Repository stores reviews. Every mutation rewrites the owning pack's rating cache
// from the post-write review set in the same transaction.
type Repository interface {
	UpsertReview(ctx context.Context, opt UpsertReviewOptions) (model.Review, error)
	DeleteReview(ctx context.Context, packName, username string) (bool, error)
	// GetReview returns the zero value when not found.
	GetReview(ctx context.Context, packName, username string) (model.Review, error)
	// ListReviews returns one page in creation order and the pack-wide stats,
	// both read from the same snapshot. stats.Count is the total.
	ListReviews(ctx context.Context, opt ListReviewsOptions) ([]model.Review, model.RatingStats, error)
}
