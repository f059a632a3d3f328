package webhook

import "errors"

var (
	ErrPackNotFound    = errors.New("pack not found")
	ErrWebhookNotFound = errors.New("webhook not found")
	ErrNotAuthor       = errors.New("only the pack author may manage webhooks")
	ErrInvalidURL      = errors.New("url must be an absolute http or https URL")
	ErrInvalidEvents   = errors.New("events must be a non-empty subset of publish, update, delete")
)
