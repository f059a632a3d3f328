package usecase

import (
	"context"

	"agentpacks-registry/internal/auth"
	"agentpacks-registry/internal/model"
	"agentpacks-registry/internal/webhook"
	"agentpacks-registry/internal/webhook/repository"
)

const (
	defaultDeliveriesLimit = 50
	maxDeliveriesLimit     = 200
)

// Create registers a webhook. New webhooks are active unless stated otherwise.
func (uc *implUseCase) Create(ctx context.Context, sc model.Scope, input webhook.CreateInput) (model.Webhook, error) {
	if err := uc.checkAuthor(ctx, sc, input.PackName); err != nil {
		return model.Webhook{}, err
	}
	if err := webhook.ValidateURL(input.URL); err != nil {
		return model.Webhook{}, err
	}
	events, err := webhook.ParseEvents(input.Events)
	if err != nil {
		return model.Webhook{}, err
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	w, err := uc.repo.CreateWebhook(ctx, repository.CreateWebhookOptions{
		PackName: input.PackName,
		URL:      input.URL,
		Secret:   normalizeSecret(input.Secret),
		Events:   events,
		Active:   active,
	})
	if err != nil {
		uc.l.Errorf(ctx, "webhook.usecase.Create.CreateWebhook: %v", err)
		return model.Webhook{}, err
	}
	uc.l.Infof(ctx, "webhook.usecase.Create: webhook %s registered for %s", w.ID, w.PackName)
	return w, nil
}

func (uc *implUseCase) List(ctx context.Context, sc model.Scope, packName string) ([]model.Webhook, error) {
	if err := uc.checkAuthor(ctx, sc, packName); err != nil {
		return nil, err
	}
	hooks, err := uc.repo.ListWebhooks(ctx, repository.ListWebhooksOptions{PackName: packName})
	if err != nil {
		uc.l.Errorf(ctx, "webhook.usecase.List.ListWebhooks: %v", err)
		return nil, err
	}
	return hooks, nil
}

// Update applies a partial update. Returns ErrWebhookNotFound when id is unknown or belongs to another pack.
func (uc *implUseCase) Update(ctx context.Context, sc model.Scope, input webhook.UpdateInput) (model.Webhook, error) {
	existing, err := uc.ownedWebhook(ctx, sc, input.PackName, input.ID)
	if err != nil {
		return model.Webhook{}, err
	}

	opt := repository.UpdateWebhookOptions{
		ID:     existing.ID,
		URL:    existing.URL,
		Secret: existing.Secret,
		Events: existing.Events,
		Active: existing.Active,
	}
	if input.URL != nil {
		if err := webhook.ValidateURL(*input.URL); err != nil {
			return model.Webhook{}, err
		}
		opt.URL = *input.URL
	}
	if input.Events != nil {
		events, err := webhook.ParseEvents(input.Events)
		if err != nil {
			return model.Webhook{}, err
		}
		opt.Events = events
	}
	if input.Secret != nil {
		opt.Secret = normalizeSecret(input.Secret)
	}
	if input.Active != nil {
		opt.Active = *input.Active
	}

	w, err := uc.repo.UpdateWebhook(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "webhook.usecase.Update.UpdateWebhook: %v", err)
		return model.Webhook{}, err
	}
	if !w.Exists() {
		return model.Webhook{}, webhook.ErrWebhookNotFound
	}
	return w, nil
}

// Delete reports false rather than failing when the webhook does not exist.
func (uc *implUseCase) Delete(ctx context.Context, sc model.Scope, packName, id string) (bool, error) {
	if _, err := uc.ownedWebhook(ctx, sc, packName, id); err != nil {
		if err == webhook.ErrWebhookNotFound {
			return false, nil
		}
		return false, err
	}
	deleted, err := uc.repo.DeleteWebhook(ctx, id)
	if err != nil {
		uc.l.Errorf(ctx, "webhook.usecase.Delete.DeleteWebhook: %v", err)
		return false, err
	}
	return deleted, nil
}

func (uc *implUseCase) ListDeliveries(ctx context.Context, sc model.Scope, input webhook.ListDeliveriesInput) ([]model.WebhookDelivery, error) {
	if _, err := uc.ownedWebhook(ctx, sc, input.PackName, input.WebhookID); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultDeliveriesLimit
	}
	limit = min(limit, maxDeliveriesLimit)

	deliveries, err := uc.repo.ListDeliveries(ctx, repository.ListDeliveriesOptions{
		WebhookID: input.WebhookID,
		Limit:     limit,
	})
	if err != nil {
		uc.l.Errorf(ctx, "webhook.usecase.ListDeliveries: %v", err)
		return nil, err
	}
	return deliveries, nil
}

// checkAuthor enforces authentication, then existence, then ownership.
func (uc *implUseCase) checkAuthor(ctx context.Context, sc model.Scope, packName string) error {
	if !sc.IsAuthenticated() {
		return auth.ErrMissingToken
	}
	p, err := uc.packs.GetPack(ctx, packName)
	if err != nil {
		uc.l.Errorf(ctx, "webhook.usecase.checkAuthor.GetPack: %v", err)
		return err
	}
	if !p.Exists() {
		return webhook.ErrPackNotFound
	}
	if !p.IsAuthor(sc.Username) {
		return webhook.ErrNotAuthor
	}
	return nil
}

func (uc *implUseCase) ownedWebhook(ctx context.Context, sc model.Scope, packName, id string) (model.Webhook, error) {
	if err := uc.checkAuthor(ctx, sc, packName); err != nil {
		return model.Webhook{}, err
	}
	w, err := uc.repo.GetWebhook(ctx, id)
	if err != nil {
		uc.l.Errorf(ctx, "webhook.usecase.ownedWebhook.GetWebhook: %v", err)
		return model.Webhook{}, err
	}
	if !w.Exists() || w.PackName != packName {
		return model.Webhook{}, webhook.ErrWebhookNotFound
	}
	return w, nil
}

func normalizeSecret(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
