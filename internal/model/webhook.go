package model

import (
	"encoding/json"
	"time"
)

// WebhookEvent is a pack lifecycle event a subscriber can register for.
type WebhookEvent string

const (
	EventPublish WebhookEvent = "publish"
	EventUpdate  WebhookEvent = "update"
	EventDelete  WebhookEvent = "delete"
)

// KnownWebhookEvents lists every event in declaration order.
var KnownWebhookEvents = []WebhookEvent{EventPublish, EventUpdate, EventDelete}

func (e WebhookEvent) IsValid() bool {
	switch e {
	case EventPublish, EventUpdate, EventDelete:
		return true
	}
	return false
}

// Webhook is a subscription to one pack's events.
type Webhook struct {
	ID        string
	PackName  string
	URL       string
	Secret    *string
	Events    []WebhookEvent
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Exists reports whether w was loaded from storage.
func (w Webhook) Exists() bool { return w.ID != "" }

// Subscribes reports whether w wants event e.
func (w Webhook) Subscribes(e WebhookEvent) bool {
	for _, ev := range w.Events {
		if ev == e {
			return true
		}
	}
	return false
}

// WebhookDelivery is an append-only record of one delivery attempt.
type WebhookDelivery struct {
	ID             string
	WebhookID      string
	Event          WebhookEvent
	Payload        json.RawMessage
	AttemptedAt    time.Time
	DurationMs     int64
	ResponseStatus *int
	Error          *string
}
