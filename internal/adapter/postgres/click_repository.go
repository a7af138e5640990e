package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/port"
)

// ClickRepository implements the attribution ledger on top of the clicks
// table, whose primary key is the (ad, webhook, address) dedup key.
type ClickRepository struct {
	pool *pgxpool.Pool
}

// NewClickRepository returns a new repository instance.
func NewClickRepository(pool *pgxpool.Pool) *ClickRepository {
	return &ClickRepository{pool: pool}
}

var _ port.ClickRepository = (*ClickRepository)(nil)

// Attribute performs the atomic check-and-grant. The upsert is a single
// statement, so two concurrent requests with the same key serialize on the
// primary key and exactly one of them observes a fresh insert (xmax = 0).
// The balance credit happens in the same transaction as that insert.
func (r *ClickRepository) Attribute(ctx context.Context, adID, webhookID, address string, earning int64) (bool, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	var first bool
	err = tx.QueryRow(ctx,
		`INSERT INTO clicks (ad_id, webhook_id, address, hits, earning, first_seen_at, last_seen_at)
		 VALUES ($1,$2,$3,1,$4,now(),now())
		 ON CONFLICT (ad_id, webhook_id, address)
		 DO UPDATE SET hits = clicks.hits + 1, last_seen_at = now()
		 RETURNING (xmax = 0)`,
		adID, webhookID, address, earning).Scan(&first)
	if err != nil {
		return false, err
	}
	if !first {
		return false, nil
	}
	_, err = tx.Exec(ctx,
		`UPDATE users SET balance = balance + $1
		 WHERE id = (SELECT owner_id FROM webhooks WHERE id = $2)`,
		earning, webhookID)
	if err != nil {
		return false, err
	}
	return true, nil
}
