package http

import (
	"errors"

	"agentpacks-registry/internal/auth"
	"agentpacks-registry/internal/webhook"
	pkgErrors "agentpacks-registry/pkg/errors"
)

const (
	codeInvalidURL     = "INVALID_URL"
	codeInvalidEvents  = "INVALID_EVENTS"
	codeInvalidRequest = "INVALID_REQUEST"
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		return pkgErrors.NewUnauthenticated("Missing or invalid bearer token")
	case errors.Is(err, webhook.ErrNotAuthor):
		return pkgErrors.NewForbidden("Only the pack author may manage webhooks")
	case errors.Is(err, webhook.ErrPackNotFound):
		return pkgErrors.NewNotFound("Pack not found")
	case errors.Is(err, webhook.ErrWebhookNotFound):
		return pkgErrors.NewNotFound("Webhook not found")
	case errors.Is(err, webhook.ErrInvalidURL):
		return pkgErrors.NewValidation(codeInvalidURL, "url must be an absolute http or https URL")
	case errors.Is(err, webhook.ErrInvalidEvents):
		return pkgErrors.NewValidation(codeInvalidEvents, "events must be a non-empty subset of publish, update, delete")
	default:
		return err
	}
}
