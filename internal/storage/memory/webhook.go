package memory

import (
	"context"

	"github.com/google/uuid"

	"agentpacks-registry/internal/model"
	"agentpacks-registry/internal/webhook/repository"
)

var _ repository.Repository = (*Store)(nil)

func (s *Store) CreateWebhook(ctx context.Context, opt repository.CreateWebhookOptions) (model.Webhook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	w := model.Webhook{
		ID:        uuid.NewString(),
		PackName:  opt.PackName,
		URL:       opt.URL,
		Secret:    cloneString(opt.Secret),
		Events:    append([]model.WebhookEvent(nil), opt.Events...),
		Active:    opt.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.webhooks[w.ID] = w
	s.hookOrder = append(s.hookOrder, w.ID)
	return cloneWebhook(w), nil
}

func (s *Store) GetWebhook(ctx context.Context, id string) (model.Webhook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneWebhook(s.webhooks[id]), nil
}

// ListWebhooks returns matches in creation order.
func (s *Store) ListWebhooks(ctx context.Context, opt repository.ListWebhooksOptions) ([]model.Webhook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Webhook{}
	for _, id := range s.hookOrder {
		w := s.webhooks[id]
		if w.PackName != opt.PackName {
			continue
		}
		if opt.ActiveOnly && !w.Active {
			continue
		}
		if opt.Event != "" && !w.Subscribes(opt.Event) {
			continue
		}
		out = append(out, cloneWebhook(w))
	}
	return out, nil
}

func (s *Store) UpdateWebhook(ctx context.Context, opt repository.UpdateWebhookOptions) (model.Webhook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.webhooks[opt.ID]
	if !ok {
		return model.Webhook{}, nil
	}
	w.URL = opt.URL
	w.Secret = cloneString(opt.Secret)
	w.Events = append([]model.WebhookEvent(nil), opt.Events...)
	w.Active = opt.Active
	w.UpdatedAt = s.timestamp()
	s.webhooks[opt.ID] = w
	return cloneWebhook(w), nil
}

// DeleteWebhook also drops the webhook's delivery log.
func (s *Store) DeleteWebhook(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.webhooks[id]; !ok {
		return false, nil
	}
	delete(s.webhooks, id)
	delete(s.deliveries, id)
	for i, hid := range s.hookOrder {
		if hid == id {
			s.hookOrder = append(s.hookOrder[:i:i], s.hookOrder[i+1:]...)
			break
		}
	}
	return true, nil
}

func (s *Store) CreateDelivery(ctx context.Context, opt repository.CreateDeliveryOptions) (model.WebhookDelivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.webhooks[opt.WebhookID]; !ok {
		return model.WebhookDelivery{}, repository.ErrFailedToInsert
	}
	d := model.WebhookDelivery{
		ID:             opt.ID,
		WebhookID:      opt.WebhookID,
		Event:          opt.Event,
		Payload:        append([]byte(nil), opt.Payload...),
		AttemptedAt:    opt.AttemptedAt,
		DurationMs:     opt.DurationMs,
		ResponseStatus: cloneInt(opt.ResponseStatus),
		Error:          cloneString(opt.Error),
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.AttemptedAt.IsZero() {
		d.AttemptedAt = s.timestamp()
	}
	s.deliveries[opt.WebhookID] = append(s.deliveries[opt.WebhookID], d)
	return d, nil
}

// ListDeliveries returns the newest deliveries first.
func (s *Store) ListDeliveries(ctx context.Context, opt repository.ListDeliveriesOptions) ([]model.WebhookDelivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src := s.deliveries[opt.WebhookID]
	out := []model.WebhookDelivery{}
	for i := len(src) - 1; i >= 0; i-- {
		if opt.Limit > 0 && len(out) == opt.Limit {
			break
		}
		out = append(out, src[i])
	}
	return out, nil
}

func cloneWebhook(w model.Webhook) model.Webhook {
	w.Secret = cloneString(w.Secret)
	w.Events = append([]model.WebhookEvent(nil), w.Events...)
	return w
}
