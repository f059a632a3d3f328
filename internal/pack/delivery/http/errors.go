package http

import (
	"errors"
	"fmt"
	"net/http"

	"agentpacks-registry/internal/auth"
	"agentpacks-registry/internal/pack"
	pkgErrors "agentpacks-registry/pkg/errors"
)

const (
	codeInvalidName       = "INVALID_NAME"
	codeInvalidVersion    = "INVALID_VERSION"
	codeInvalidManifest   = "INVALID_MANIFEST"
	codeInvalidRequest    = "INVALID_REQUEST"
	codeMissingTarball    = "MISSING_TARBALL"
	codeVersionExists     = "VERSION_EXISTS"
	codeInsufficientScope = "INSUFFICIENT_SCOPE"
)

// mapError translates domain/use-case errors into HTTP errors from pkg/errors.
// Unknown errors pass through and are rendered as 500.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		return pkgErrors.NewUnauthenticated("Missing or invalid bearer token")
	case errors.Is(err, pack.ErrInsufficientScope):
		return pkgErrors.NewForbidden("Token scope does not allow publishing").WithCode(codeInsufficientScope)
	case errors.Is(err, pack.ErrNotAuthor):
		return pkgErrors.NewForbidden("Only the pack author may do this")
	case errors.Is(err, pack.ErrPackNotFound):
		return pkgErrors.NewNotFound("Pack not found")
	case errors.Is(err, pack.ErrVersionNotFound):
		return pkgErrors.NewNotFound("Version not found")
	case errors.Is(err, pack.ErrRateLimited):
		return pkgErrors.NewHTTPError(http.StatusTooManyRequests, "Publish rate limit exceeded, try again later")
	case errors.Is(err, pack.ErrPayloadTooLarge):
		return h.tooLarge()
	case errors.Is(err, pack.ErrMissingTarball):
		return pkgErrors.NewValidation(codeMissingTarball, "A non-empty tarball is required")
	case errors.Is(err, pack.ErrNameTooShort):
		return pkgErrors.NewValidation(codeInvalidName, fmt.Sprintf("Pack name must be at least %d characters", pack.MinNameLength))
	case errors.Is(err, pack.ErrNameInvalid):
		return pkgErrors.NewValidation(codeInvalidName, "Invalid pack name: use lowercase letters, digits and single hyphens")
	case errors.Is(err, pack.ErrNameReserved):
		return pkgErrors.NewValidation(codeInvalidName, "This is a reserved name and cannot be published")
	case errors.Is(err, pack.ErrInvalidVersion):
		return pkgErrors.NewValidation(codeInvalidVersion, "Version must be semver (MAJOR.MINOR.PATCH)")
	case errors.Is(err, pack.ErrInvalidManifest):
		return pkgErrors.NewValidation(codeInvalidManifest, err.Error())
	case errors.Is(err, pack.ErrVersionExists):
		return pkgErrors.NewConflict(codeVersionExists, "This version has already been published")
	default:
		return err
	}
}

func (h *handler) tooLarge() error {
	return pkgErrors.NewHTTPError(http.StatusRequestEntityTooLarge,
		fmt.Sprintf("Tarball exceeds maximum size of %d bytes", h.maxBytes))
}
