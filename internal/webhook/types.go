package webhook

import (
	"net/url"

	"agentpacks-registry/internal/model"
)

// --- UseCase Inputs ---

type CreateInput struct {
	PackName string
	URL      string
	Secret   *string
	Events   []string
	Active   *bool
}

// UpdateInput is a partial update; nil fields are left unchanged.
// A non-nil empty Secret removes the secret.
type UpdateInput struct {
	PackName string
	ID       string
	URL      *string
	Secret   *string
	Events   []string
	Active   *bool
}

type ListDeliveriesInput struct {
	PackName  string
	WebhookID string
	Limit     int
}

type DispatchInput struct {
	PackName string
	Event    model.WebhookEvent
	Version  string
	Data     any
}

// Envelope is the JSON body posted to subscribers.
type Envelope struct {
	ID        string             `json:"id"`
	Event     model.WebhookEvent `json:"event"`
	Pack      string             `json:"pack"`
	Version   string             `json:"version,omitempty"`
	Timestamp string             `json:"timestamp"`
	Data      any                `json:"data"`
}

// Delivery headers.
const (
	HeaderEvent     = "X-Agentpacks-Event"
	HeaderDelivery  = "X-Agentpacks-Delivery"
	HeaderSignature = "X-Agentpacks-Signature"
)

// ValidateURL accepts absolute http and https URLs with a host.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidURL
	}
	return nil
}

// ParseEvents validates and de-duplicates raw, preserving first-seen order.
func ParseEvents(raw []string) ([]model.WebhookEvent, error) {
	if len(raw) == 0 {
		return nil, ErrInvalidEvents
	}
	seen := make(map[model.WebhookEvent]bool, len(raw))
	events := make([]model.WebhookEvent, 0, len(raw))
	for _, r := range raw {
		ev := model.WebhookEvent(r)
		if !ev.IsValid() {
			return nil, ErrInvalidEvents
		}
		if seen[ev] {
			continue
		}
		seen[ev] = true
		events = append(events, ev)
	}
	return events, nil
}
