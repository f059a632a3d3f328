package http

import (
	"encoding/json"
	"time"

	"agentpacks-registry/internal/model"
	"agentpacks-registry/internal/webhook"
)

// --- Request DTOs ---

type createReq struct {
	URL    string   `json:"url"`
	Secret *string  `json:"secret"`
	Events []string `json:"events"`
	Active *bool    `json:"active"`
}

func (r createReq) toInput(packName string) webhook.CreateInput {
	return webhook.CreateInput{
		PackName: packName,
		URL:      r.URL,
		Secret:   r.Secret,
		Events:   r.Events,
		Active:   r.Active,
	}
}

// updateReq is a partial update. An empty secret removes it.
type updateReq struct {
	URL    *string  `json:"url"`
	Secret *string  `json:"secret"`
	Events []string `json:"events"`
	Active *bool    `json:"active"`
}

func (r updateReq) toInput(packName, id string) webhook.UpdateInput {
	return webhook.UpdateInput{
		PackName: packName,
		ID:       id,
		URL:      r.URL,
		Secret:   r.Secret,
		Events:   r.Events,
		Active:   r.Active,
	}
}

type deliveriesReq struct {
	Limit int `form:"limit"`
}

// --- Response DTOs ---

// webhookResp never carries the secret itself.
type webhookResp struct {
	ID        string    `json:"id"`
	PackName  string    `json:"pack_name"`
	URL       string    `json:"url"`
	HasSecret bool      `json:"has_secret"`
	Events    []string  `json:"events"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newWebhookResp(w model.Webhook) webhookResp {
	events := make([]string, len(w.Events))
	for i, e := range w.Events {
		events[i] = string(e)
	}
	return webhookResp{
		ID:        w.ID,
		PackName:  w.PackName,
		URL:       w.URL,
		HasSecret: w.Secret != nil && *w.Secret != "",
		Events:    events,
		Active:    w.Active,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

type listResp struct {
	Webhooks []webhookResp `json:"webhooks"`
}

func (h *handler) newListResp(hooks []model.Webhook) listResp {
	out := make([]webhookResp, len(hooks))
	for i, w := range hooks {
		out[i] = newWebhookResp(w)
	}
	return listResp{Webhooks: out}
}

type deleteResp struct {
	Deleted bool `json:"deleted"`
}

type deliveryResp struct {
	ID             string          `json:"id"`
	WebhookID      string          `json:"webhook_id"`
	Event          string          `json:"event"`
	Payload        json.RawMessage `json:"payload"`
	AttemptedAt    time.Time       `json:"attempted_at"`
	DurationMs     int64           `json:"duration_ms"`
	ResponseStatus *int            `json:"response_status"`
	Error          *string         `json:"error"`
}

type listDeliveriesResp struct {
	Deliveries []deliveryResp `json:"deliveries"`
}

func (h *handler) newListDeliveriesResp(ds []model.WebhookDelivery) listDeliveriesResp {
	out := make([]deliveryResp, len(ds))
	for i, d := range ds {
		out[i] = deliveryResp{
			ID:             d.ID,
			WebhookID:      d.WebhookID,
			Event:          string(d.Event),
			Payload:        d.Payload,
			AttemptedAt:    d.AttemptedAt,
			DurationMs:     d.DurationMs,
			ResponseStatus: d.ResponseStatus,
			Error:          d.Error,
		}
	}
	return listDeliveriesResp{Deliveries: out}
}
