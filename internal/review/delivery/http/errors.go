package http

import (
	"errors"
	"fmt"

	"agentpacks-registry/internal/auth"
	"agentpacks-registry/internal/review"
	pkgErrors "agentpacks-registry/pkg/errors"
)

const (
	codeInvalidRating  = "INVALID_RATING"
	codeInvalidComment = "INVALID_COMMENT"
	codeInvalidRequest = "INVALID_REQUEST"
)

var errInvalidRating = pkgErrors.NewValidation(codeInvalidRating, "Rating must be an integer between 1 and 5")

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		return pkgErrors.NewUnauthenticated("Missing or invalid bearer token")
	case errors.Is(err, review.ErrPackNotFound):
		return pkgErrors.NewNotFound("Pack not found")
	case errors.Is(err, review.ErrSelfReview):
		return pkgErrors.NewForbidden("You cannot review your own pack")
	case errors.Is(err, review.ErrInvalidRating):
		return errInvalidRating
	case errors.Is(err, review.ErrCommentTooLong):
		return pkgErrors.NewValidation(codeInvalidComment,
			fmt.Sprintf("Comment must be at most %d characters", review.MaxCommentLength))
	default:
		return err
	}
}
