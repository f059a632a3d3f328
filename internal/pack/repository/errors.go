package repository

import "errors"

var (
	ErrFailedToInsert = errors.New("failed to insert record")
	ErrFailedToGet    = errors.New("failed to get record")
	ErrFailedToList   = errors.New("failed to list records")
	ErrFailedToUpdate = errors.New("failed to update record")

	ErrVersionExists  = errors.New("version already exists")
	ErrAuthorMismatch = errors.New("pack belongs to another author")
)
