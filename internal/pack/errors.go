package pack

import "errors"

var (
	ErrPackNotFound      = errors.New("pack not found")
	ErrVersionNotFound   = errors.New("version not found")
	ErrNotAuthor         = errors.New("only the pack author may do this")
	ErrInsufficientScope = errors.New("token scope does not allow publishing")
	ErrRateLimited       = errors.New("publish rate limit exceeded")
	ErrPayloadTooLarge   = errors.New("tarball exceeds maximum size")
	ErrMissingTarball    = errors.New("tarball is required")
	ErrInvalidVersion    = errors.New("version is not valid semver")
	ErrInvalidManifest   = errors.New("manifest is invalid")
	ErrVersionExists     = errors.New("version already published")

	// Name policy
	ErrNameTooShort = errors.New("pack name must be at least 2 characters")
	ErrNameInvalid  = errors.New("invalid pack name")
	ErrNameReserved = errors.New("pack name is a reserved name")
)
