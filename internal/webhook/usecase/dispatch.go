package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"agentpacks-registry/internal/model"
	"agentpacks-registry/internal/webhook"
	"agentpacks-registry/internal/webhook/repository"
	"agentpacks-registry/pkg/jcs"
)

// Dispatch delivers one event to every active webhook of the pack subscribed to it.
// It waits for all attempts, records each one, and returns the number matched.
func (uc *implUseCase) Dispatch(ctx context.Context, input webhook.DispatchInput) (int, error) {
	hooks, err := uc.repo.ListWebhooks(ctx, repository.ListWebhooksOptions{
		PackName:   input.PackName,
		ActiveOnly: true,
		Event:      input.Event,
	})
	if err != nil {
		uc.l.Errorf(ctx, "webhook.usecase.Dispatch.ListWebhooks: %v", err)
		return 0, err
	}
	if len(hooks) == 0 {
		return 0, nil
	}

	body, err := jcs.Marshal(webhook.Envelope{
		ID:        uuid.NewString(),
		Event:     input.Event,
		Pack:      input.PackName,
		Version:   input.Version,
		Timestamp: uc.now().UTC().Format(time.RFC3339Nano),
		Data:      input.Data,
	})
	if err != nil {
		uc.l.Errorf(ctx, "webhook.usecase.Dispatch.Marshal: %v", err)
		return 0, err
	}

	var g errgroup.Group
	g.SetLimit(uc.cfg.MaxConcurrency)
	for _, h := range hooks {
		g.Go(func() error {
			uc.deliver(ctx, h, input.Event, body)
			return nil
		})
	}
	_ = g.Wait()

	return len(hooks), nil
}

// deliver performs exactly one attempt and always records it.
func (uc *implUseCase) deliver(ctx context.Context, h model.Webhook, event model.WebhookEvent, body []byte) {
	deliveryID := uuid.NewString()
	start := uc.now()
	status, sendErr := uc.send(ctx, h, event, deliveryID, body)
	elapsed := uc.now().Sub(start)

	opt := repository.CreateDeliveryOptions{
		ID:          deliveryID,
		WebhookID:   h.ID,
		Event:       event,
		Payload:     body,
		AttemptedAt: start.UTC(),
		DurationMs:  elapsed.Milliseconds(),
	}
	outcome := "success"
	switch {
	case sendErr != nil:
		msg := sendErr.Error()
		opt.Error = &msg
		outcome = "failure"
	case status < 200 || status >= 300:
		msg := fmt.Sprintf("unexpected status %d", status)
		opt.ResponseStatus = &status
		opt.Error = &msg
		outcome = "failure"
	default:
		opt.ResponseStatus = &status
	}
	uc.metrics.ObserveDelivery(string(event), outcome, elapsed)

	if outcome == "failure" {
		uc.l.Warnf(ctx, "webhook.usecase.deliver: webhook %s %s failed: %s", h.ID, event, *opt.Error)
	}

	// Record even when the dispatch context has already expired.
	if _, err := uc.repo.CreateDelivery(context.WithoutCancel(ctx), opt); err != nil {
		uc.l.Errorf(ctx, "webhook.usecase.deliver.CreateDelivery: %v", err)
	}
}

func (uc *implUseCase) send(ctx context.Context, h model.Webhook, event model.WebhookEvent, deliveryID string, body []byte) (int, error) {
	if uc.pace != nil {
		if err := uc.pace.Wait(ctx); err != nil {
			return 0, fmt.Errorf("delivery not attempted: %w", err)
		}
	}

	headers := map[string]string{
		webhook.HeaderEvent:    string(event),
		webhook.HeaderDelivery: deliveryID,
	}
	if h.Secret != nil {
		headers[webhook.HeaderSignature] = jcs.SignHMAC(*h.Secret, body)
	}

	sendCtx, cancel := context.WithTimeout(ctx, uc.cfg.DeliveryTimeout)
	defer cancel()
	return uc.client.Post(sendCtx, h.URL, headers, body)
}
