package review

import "errors"

var (
	ErrPackNotFound   = errors.New("pack not found")
	ErrSelfReview     = errors.New("authors cannot review their own pack")
	ErrInvalidRating  = errors.New("rating must be an integer between 1 and 5")
	ErrCommentTooLong = errors.New("comment is too long")
)
