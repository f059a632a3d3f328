package webhook

import (
	"context"

	"agentpacks-registry/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Registry. Every call requires the acting user to be the pack's author.
	Create(ctx context.Context, sc model.Scope, input CreateInput) (model.Webhook, error)
	List(ctx context.Context, sc model.Scope, packName string) ([]model.Webhook, error)
	Update(ctx context.Context, sc model.Scope, input UpdateInput) (model.Webhook, error)
	Delete(ctx context.Context, sc model.Scope, packName, id string) (bool, error)
	ListDeliveries(ctx context.Context, sc model.Scope, input ListDeliveriesInput) ([]model.WebhookDelivery, error)

	Dispatcher
}

// Dispatcher fans a pack event out to matching subscriptions.
type Dispatcher interface {
	// Dispatch returns the number of webhooks matched. Delivery failures are logged, never returned.
	Dispatch(ctx context.Context, input DispatchInput) (int, error)
}
