package postgre

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"agentpacks-registry/internal/model"
	"agentpacks-registry/internal/webhook/repository"
)

var _ repository.Repository = (*Store)(nil)

const webhookColumns = `id, pack_name, url, secret, events, active, created_at, updated_at`

const deliveryColumns = `id, webhook_id, event, payload, attempted_at, duration_ms, response_status, error`

func scanWebhook(row pgx.Row) (model.Webhook, error) {
	var (
		w      model.Webhook
		events []string
	)
	err := row.Scan(&w.ID, &w.PackName, &w.URL, &w.Secret, &events, &w.Active, &w.CreatedAt, &w.UpdatedAt)
	w.Events = make([]model.WebhookEvent, len(events))
	for i, e := range events {
		w.Events[i] = model.WebhookEvent(e)
	}
	return w, err
}

func scanDelivery(row pgx.Row) (model.WebhookDelivery, error) {
	var (
		d       model.WebhookDelivery
		event   string
		payload []byte
	)
	err := row.Scan(&d.ID, &d.WebhookID, &event, &payload, &d.AttemptedAt, &d.DurationMs, &d.ResponseStatus, &d.Error)
	d.Event = model.WebhookEvent(event)
	d.Payload = payload
	return d, err
}

func eventStrings(events []model.WebhookEvent) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = string(e)
	}
	return out
}

func (s *Store) CreateWebhook(ctx context.Context, opt repository.CreateWebhookOptions) (model.Webhook, error) {
	w, err := scanWebhook(s.pool.QueryRow(ctx, `
		INSERT INTO webhooks (id, pack_name, url, secret, events, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING `+webhookColumns,
		uuid.NewString(), opt.PackName, opt.URL, opt.Secret, eventStrings(opt.Events), opt.Active))
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("CreateWebhook"), err)
		return model.Webhook{}, repository.ErrFailedToInsert
	}
	return w, nil
}

func (s *Store) GetWebhook(ctx context.Context, id string) (model.Webhook, error) {
	w, err := scanWebhook(s.pool.QueryRow(ctx, `SELECT `+webhookColumns+` FROM webhooks WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Webhook{}, nil
	}
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("GetWebhook"), err)
		return model.Webhook{}, repository.ErrFailedToGet
	}
	return w, nil
}

// ListWebhooks returns matches in creation order.
func (s *Store) ListWebhooks(ctx context.Context, opt repository.ListWebhooksOptions) ([]model.Webhook, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+webhookColumns+` FROM webhooks
		WHERE pack_name = $1
		  AND ($2::boolean IS FALSE OR active)
		  AND ($3::text = '' OR $3::text = ANY (events))
		ORDER BY created_at, id`, opt.PackName, opt.ActiveOnly, string(opt.Event))
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("ListWebhooks"), err)
		return nil, repository.ErrFailedToList
	}
	defer rows.Close()

	out := []model.Webhook{}
	for rows.Next() {
		w, err := scanWebhook(rows)
		if err != nil {
			s.l.Errorf(ctx, "%s scan: %v", s.dsn("ListWebhooks"), err)
			return nil, repository.ErrFailedToList
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		s.l.Errorf(ctx, "%s rows: %v", s.dsn("ListWebhooks"), err)
		return nil, repository.ErrFailedToList
	}
	return out, nil
}

func (s *Store) UpdateWebhook(ctx context.Context, opt repository.UpdateWebhookOptions) (model.Webhook, error) {
	w, err := scanWebhook(s.pool.QueryRow(ctx, `
		UPDATE webhooks SET url = $2, secret = $3, events = $4, active = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING `+webhookColumns,
		opt.ID, opt.URL, opt.Secret, eventStrings(opt.Events), opt.Active))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Webhook{}, nil
	}
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("UpdateWebhook"), err)
		return model.Webhook{}, repository.ErrFailedToUpdate
	}
	return w, nil
}

// DeleteWebhook also drops the delivery log (ON DELETE CASCADE).
func (s *Store) DeleteWebhook(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM webhooks WHERE id = $1`, id)
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("DeleteWebhook"), err)
		return false, repository.ErrFailedToDelete
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) CreateDelivery(ctx context.Context, opt repository.CreateDeliveryOptions) (model.WebhookDelivery, error) {
	id := opt.ID
	if id == "" {
		id = uuid.NewString()
	}
	attempted := opt.AttemptedAt
	if attempted.IsZero() {
		attempted = time.Now().UTC()
	}

	d, err := scanDelivery(s.pool.QueryRow(ctx, `
		INSERT INTO webhook_deliveries (id, webhook_id, event, payload, attempted_at, duration_ms, response_status, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+deliveryColumns,
		id, opt.WebhookID, string(opt.Event), []byte(opt.Payload), attempted, opt.DurationMs, opt.ResponseStatus, opt.Error))
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("CreateDelivery"), err)
		return model.WebhookDelivery{}, repository.ErrFailedToInsert
	}
	return d, nil
}

// ListDeliveries returns the newest deliveries first.
func (s *Store) ListDeliveries(ctx context.Context, opt repository.ListDeliveriesOptions) ([]model.WebhookDelivery, error) {
	var limit *int
	if opt.Limit > 0 {
		limit = &opt.Limit
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+deliveryColumns+` FROM webhook_deliveries
		WHERE webhook_id = $1
		ORDER BY attempted_at DESC, id DESC
		LIMIT $2`, opt.WebhookID, limit)
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("ListDeliveries"), err)
		return nil, repository.ErrFailedToList
	}
	defer rows.Close()

	out := []model.WebhookDelivery{}
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			s.l.Errorf(ctx, "%s scan: %v", s.dsn("ListDeliveries"), err)
			return nil, repository.ErrFailedToList
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		s.l.Errorf(ctx, "%s rows: %v", s.dsn("ListDeliveries"), err)
		return nil, repository.ErrFailedToList
	}
	return out, nil
}
