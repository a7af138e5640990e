package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/domain"
	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/port"
)

// WebhookRepository implements port.WebhookRepository using pgxpool.
type WebhookRepository struct {
	pool *pgxpool.Pool
}

// NewWebhookRepository returns a new repository instance.
func NewWebhookRepository(pool *pgxpool.Pool) *WebhookRepository {
	return &WebhookRepository{pool: pool}
}

const webhookColumns = `id, owner_id, url, label, active, sent_count, error_count, last_success, last_sent, last_error, created_at`

func scanWebhook(row pgx.CollectableRow) (domain.Webhook, error) {
	var w domain.Webhook
	err := row.Scan(&w.ID, &w.OwnerID, &w.URL, &w.Label, &w.Active,
		&w.SentCount, &w.ErrorCount, &w.LastSuccess, &w.LastSent, &w.LastError, &w.CreatedAt)
	return w, err
}

// CreateWebhook inserts a new endpoint. A violation of the (owner, url)
// uniqueness constraint is reported as port.ErrDuplicateURL.
func (r *WebhookRepository) CreateWebhook(ctx context.Context, w *domain.Webhook) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO webhooks (id, owner_id, url, label, active, created_at)
		 VALUES ($1,$2,$3,$4,$5,now())`,
		w.ID, w.OwnerID, w.URL, w.Label, w.Active)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return port.ErrDuplicateURL
	}
	return err
}

// GetWebhook returns an endpoint by id, or (nil, nil) when no row matches.
func (r *WebhookRepository) GetWebhook(ctx context.Context, id string) (*domain.Webhook, error) {
	var w domain.Webhook
	err := r.pool.QueryRow(ctx, `SELECT `+webhookColumns+` FROM webhooks WHERE id = $1`, id).
		Scan(&w.ID, &w.OwnerID, &w.URL, &w.Label, &w.Active,
			&w.SentCount, &w.ErrorCount, &w.LastSuccess, &w.LastSent, &w.LastError, &w.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// CountWebhooksByOwner returns how many endpoints the owner currently holds.
func (r *WebhookRepository) CountWebhooksByOwner(ctx context.Context, ownerID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM webhooks WHERE owner_id = $1`, ownerID).Scan(&n)
	return n, err
}

// DeleteOwnedWebhook deletes the endpoint only when it belongs to ownerID.
// The owner check lives in the WHERE clause so a forged id can never
// delete another owner's endpoint.
func (r *WebhookRepository) DeleteOwnedWebhook(ctx context.Context, id, ownerID string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM webhooks WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListActiveWebhooks returns all active endpoints in creation order. The
// result is a snapshot: endpoints registered mid-cycle join the next one.
func (r *WebhookRepository) ListActiveWebhooks(ctx context.Context) ([]domain.Webhook, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+webhookColumns+` FROM webhooks WHERE active ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanWebhook)
}

// ListWebhooksByOwner returns an owner's endpoints, newest first.
func (r *WebhookRepository) ListWebhooksByOwner(ctx context.Context, ownerID string) ([]domain.Webhook, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+webhookColumns+` FROM webhooks WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanWebhook)
}
