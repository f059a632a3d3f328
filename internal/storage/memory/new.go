package memory

import (
	"context"
	"sync"
	"time"

	"agentpacks-registry/internal/model"
)

// Store keeps every registry table in process memory behind one mutex.
// It implements the auth, pack, review and webhook repository interfaces.
type Store struct {
	mu  sync.Mutex
	now func() time.Time

	tokens     map[string]model.AuthToken
	packs      map[string]model.Pack
	versions   map[string][]model.PackVersion
	reviews    map[string][]model.Review
	webhooks   map[string]model.Webhook
	hookOrder  []string
	deliveries map[string][]model.WebhookDelivery
}

// Option customises a Store.
type Option func(*Store)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		now:        time.Now,
		tokens:     map[string]model.AuthToken{},
		packs:      map[string]model.Pack{},
		versions:   map[string][]model.PackVersion{},
		reviews:    map[string][]model.Review{},
		webhooks:   map[string]model.Webhook{},
		deliveries: map[string][]model.WebhookDelivery{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func clonePack(p model.Pack) model.Pack {
	p.DeprecationMessage = cloneString(p.DeprecationMessage)
	p.AverageRating = cloneInt(p.AverageRating)
	return p
}
