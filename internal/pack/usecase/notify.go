package usecase

import (
	"context"

	"agentpacks-registry/internal/webhook"
)

// notify dispatches in the background. The request context is detached so the
// response can complete while deliveries are still in flight.
func (uc *implUseCase) notify(ctx context.Context, input webhook.DispatchInput) {
	if uc.notifier == nil {
		return
	}
	bg := context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(bg, uc.cfg.NotifyTimeout)
		defer cancel()

		n, err := uc.notifier.Dispatch(ctx, input)
		if err != nil {
			uc.l.Errorf(ctx, "pack.usecase.notify: %s %s: %v", input.PackName, input.Event, err)
			return
		}
		uc.l.Debugf(ctx, "pack.usecase.notify: %s %s matched %d webhooks", input.PackName, input.Event, n)
	}()
}
