package repository

import "errors"

var (
	ErrFailedToInsert = errors.New("failed to insert record")
	ErrFailedToGet    = errors.New("failed to get record")
	ErrFailedToList   = errors.New("failed to list records")
	ErrFailedToDelete = errors.New("failed to delete record")

	// ErrPackMissing is returned when the pack disappeared between the usecase check and the write.
	ErrPackMissing = errors.New("pack does not exist")
)
