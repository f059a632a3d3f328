package repository

import (
	"encoding/json"
	"time"

	"agentpacks-registry/internal/model"
)

type CreateWebhookOptions struct {
	PackName string
	URL      string
	Secret   *string
	Events   []model.WebhookEvent
	Active   bool
}

// ListWebhooksOptions filters by pack. ActiveOnly and Event narrow the set for dispatch.
type ListWebhooksOptions struct {
	PackName   string
	ActiveOnly bool
	Event      model.WebhookEvent
}

type UpdateWebhookOptions struct {
	ID     string
	URL    string
	Secret *string
	Events []model.WebhookEvent
	Active bool
}

// CreateDeliveryOptions.ID is generated when empty.
type CreateDeliveryOptions struct {
	ID             string
	WebhookID      string
	Event          model.WebhookEvent
	Payload        json.RawMessage
	AttemptedAt    time.Time
	DurationMs     int64
	ResponseStatus *int
	Error          *string
}

// ListDeliveriesOptions returns the newest deliveries first.
type ListDeliveriesOptions struct {
	WebhookID string
	Limit     int
}
