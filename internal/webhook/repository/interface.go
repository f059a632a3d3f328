package repository

import (
	"context"

	"agentpacks-registry/internal/model"
)

// Repository is the composed interface for webhook subscriptions and their delivery log.
type Repository interface {
	WebhookRepository
	DeliveryRepository
}

type WebhookRepository interface {
	CreateWebhook(ctx context.Context, opt CreateWebhookOptions) (model.Webhook, error)
	// GetWebhook returns the zero value when not found.
	GetWebhook(ctx context.Context, id string) (model.Webhook, error)
	ListWebhooks(ctx context.Context, opt ListWebhooksOptions) ([]model.Webhook, error)
	// UpdateWebhook replaces every mutable field. Returns the zero value when not found.
	UpdateWebhook(ctx context.Context, opt UpdateWebhookOptions) (model.Webhook, error)
	DeleteWebhook(ctx context.Context, id string) (bool, error)
}

// DeliveryRepository is append-only.
type DeliveryRepository interface {
	CreateDelivery(ctx context.Context, opt CreateDeliveryOptions) (model.WebhookDelivery, error)
	ListDeliveries(ctx context.Context, opt ListDeliveriesOptions) ([]model.WebhookDelivery, error)
}
