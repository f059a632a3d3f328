package usecase

import (
	"context"
	"errors"
	"unicode/utf8"

	"agentpacks-registry/internal/auth"
	"agentpacks-registry/internal/model"
	"agentpacks-registry/internal/review"
	"agentpacks-registry/internal/review/repository"
)

// Upsert checks, in order: authentication, pack existence, self-review, rating range, comment length.
func (uc *implUseCase) Upsert(ctx context.Context, sc model.Scope, input review.UpsertInput) (model.Review, error) {
	if !sc.IsAuthenticated() {
		return model.Review{}, auth.ErrMissingToken
	}
	p, err := uc.getPack(ctx, input.PackName)
	if err != nil {
		return model.Review{}, err
	}
	if p.IsAuthor(sc.Username) {
		return model.Review{}, review.ErrSelfReview
	}
	if input.Rating < model.MinRating || input.Rating > model.MaxRating {
		return model.Review{}, review.ErrInvalidRating
	}
	if input.Comment != nil && utf8.RuneCountInString(*input.Comment) > review.MaxCommentLength {
		return model.Review{}, review.ErrCommentTooLong
	}

	r, err := uc.repo.UpsertReview(ctx, repository.UpsertReviewOptions{
		PackName: p.Name,
		Username: sc.Username,
		Rating:   input.Rating,
		Comment:  input.Comment,
	})
	if err != nil {
		if errors.Is(err, repository.ErrPackMissing) {
			return model.Review{}, review.ErrPackNotFound
		}
		uc.l.Errorf(ctx, "review.usecase.Upsert.UpsertReview: %v", err)
		return model.Review{}, err
	}
	uc.metrics.ObserveReviewMutation("upsert")
	return r, nil
}

// Delete removes the caller's review. A missing review or pack yields false.
func (uc *implUseCase) Delete(ctx context.Context, sc model.Scope, packName string) (bool, error) {
	if !sc.IsAuthenticated() {
		return false, auth.ErrMissingToken
	}
	deleted, err := uc.repo.DeleteReview(ctx, packName, sc.Username)
	if err != nil {
		uc.l.Errorf(ctx, "review.usecase.Delete.DeleteReview: %v", err)
		return false, err
	}
	if deleted {
		uc.metrics.ObserveReviewMutation("delete")
	}
	return deleted, nil
}

func (uc *implUseCase) getPack(ctx context.Context, name string) (model.Pack, error) {
	p, err := uc.packs.GetPack(ctx, name)
	if err != nil {
		uc.l.Errorf(ctx, "review.usecase.getPack: %v", err)
		return model.Pack{}, err
	}
	if !p.Exists() {
		return model.Pack{}, review.ErrPackNotFound
	}
	return p, nil
}
