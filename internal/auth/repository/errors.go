package repository

import "errors"

var (
	ErrFailedToInsert = errors.New("failed to insert token")
	ErrFailedToGet    = errors.New("failed to get token")
)
