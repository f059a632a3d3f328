package usecase

import (
	"context"

	"agentpacks-registry/internal/auth"
	"agentpacks-registry/internal/model"
	"agentpacks-registry/internal/review"
	"agentpacks-registry/internal/review/repository"
)

// List returns one page of reviews in creation order with the pack-wide total and mean.
func (uc *implUseCase) List(ctx context.Context, input review.ListInput) (review.ListOutput, error) {
	if _, err := uc.getPack(ctx, input.PackName); err != nil {
		return review.ListOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = review.DefaultListLimit
	}
	limit = min(limit, review.MaxListLimit)
	offset := max(input.Offset, 0)

	reviews, stats, err := uc.repo.ListReviews(ctx, repository.ListReviewsOptions{
		PackName: input.PackName,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		uc.l.Errorf(ctx, "review.usecase.List.ListReviews: %v", err)
		return review.ListOutput{}, err
	}

	return review.ListOutput{
		Reviews:       reviews,
		Total:         stats.Count,
		AverageRating: stats.DisplayAverage(),
		Limit:         limit,
		Offset:        offset,
	}, nil
}

// GetUserReview returns the caller's review of packName, or the zero value.
func (uc *implUseCase) GetUserReview(ctx context.Context, sc model.Scope, packName string) (model.Review, error) {
	if !sc.IsAuthenticated() {
		return model.Review{}, auth.ErrMissingToken
	}
	if _, err := uc.getPack(ctx, packName); err != nil {
		return model.Review{}, err
	}
	r, err := uc.repo.GetReview(ctx, packName, sc.Username)
	if err != nil {
		uc.l.Errorf(ctx, "review.usecase.GetUserReview: %v", err)
		return model.Review{}, err
	}
	return r, nil
}
