package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/domain"
)

// DeliveryRepository implements port.DeliveryRepository using pgxpool.
// Records are append-only; no update or delete path exists.
type DeliveryRepository struct {
	pool *pgxpool.Pool
}

// NewDeliveryRepository returns a new repository instance.
func NewDeliveryRepository(pool *pgxpool.Pool) *DeliveryRepository {
	return &DeliveryRepository{pool: pool}
}

// RecordSuccess applies every side effect of one successful delivery in a
// single transaction: the audit record, the webhook counters, the ad
// impression and the owner's earning. Either all of them commit or none.
func (r *DeliveryRepository) RecordSuccess(ctx context.Context, rec *domain.Delivery) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO deliveries (id, ad_id, webhook_id, status, earning, created_at)
		 VALUES ($1,$2,$3,'success',$4,now())`,
		rec.ID, rec.AdID, rec.WebhookID, rec.Earning)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx,
		`UPDATE webhooks SET sent_count = sent_count + 1, last_success = now(),
		 last_sent = now(), last_error = NULL WHERE id = $1`, *rec.WebhookID)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx,
		`UPDATE ads SET impressions = impressions + 1 WHERE id = $1`, rec.AdID)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx,
		`UPDATE users SET balance = balance + $1
		 WHERE id = (SELECT owner_id FROM webhooks WHERE id = $2)`,
		rec.Earning, *rec.WebhookID)
	return err
}

// RecordFailure appends an error record and bumps the endpoint's error
// counter, overwriting last_error with the most recent message.
func (r *DeliveryRepository) RecordFailure(ctx context.Context, rec *domain.Delivery) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO deliveries (id, ad_id, webhook_id, status, earning, error_message, created_at)
		 VALUES ($1,$2,$3,'error',0,$4,now())`,
		rec.ID, rec.AdID, rec.WebhookID, rec.ErrorMessage)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx,
		`UPDATE webhooks SET error_count = error_count + 1, last_sent = now(),
		 last_error = $1 WHERE id = $2`, rec.ErrorMessage, *rec.WebhookID)
	return err
}

// RecordFilterRejection appends a record with no endpoint reference; the
// error message carries the filter's reasoning.
func (r *DeliveryRepository) RecordFilterRejection(ctx context.Context, rec *domain.Delivery) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO deliveries (id, ad_id, webhook_id, status, earning, error_message, created_at)
		 VALUES ($1,$2,NULL,'filter_rejected',0,$3,now())`,
		rec.ID, rec.AdID, rec.ErrorMessage)
	return err
}

// ListDeliveries returns recent records, newest first.
func (r *DeliveryRepository) ListDeliveries(ctx context.Context, limit int) ([]domain.Delivery, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, ad_id, webhook_id, status, earning, error_message, created_at
		 FROM deliveries ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Delivery, error) {
		var d domain.Delivery
		err := row.Scan(&d.ID, &d.AdID, &d.WebhookID, &d.Status, &d.Earning, &d.ErrorMessage, &d.CreatedAt)
		return d, err
	})
}
