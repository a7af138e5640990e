package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/domain"
)

// AdRepository implements port.AdRepository using pgxpool.
type AdRepository struct {
	pool *pgxpool.Pool
}

// NewAdRepository returns a new repository instance.
func NewAdRepository(pool *pgxpool.Pool) *AdRepository {
	return &AdRepository{pool: pool}
}

const adColumns = `id, owner_id, title, body, target_url, COALESCE(media_url, ''), status, impressions, created_at`

func scanAd(row pgx.CollectableRow) (domain.Ad, error) {
	var a domain.Ad
	err := row.Scan(&a.ID, &a.OwnerID, &a.Title, &a.Body, &a.TargetURL, &a.MediaURL,
		&a.Status, &a.Impressions, &a.CreatedAt)
	return a, err
}

// CreateAd inserts a new ad. The status column defaults in the caller, not
// in SQL, so the row mirrors the domain value exactly.
func (r *AdRepository) CreateAd(ctx context.Context, ad *domain.Ad) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO ads (id, owner_id, title, body, target_url, media_url, status, impressions, created_at)
		 VALUES ($1,$2,$3,$4,$5,NULLIF($6,''),$7,0,now())`,
		ad.ID, ad.OwnerID, ad.Title, ad.Body, ad.TargetURL, ad.MediaURL, ad.Status)
	return err
}

// GetAd returns an ad by id, or (nil, nil) when no row matches.
func (r *AdRepository) GetAd(ctx context.Context, id string) (*domain.Ad, error) {
	var a domain.Ad
	err := r.pool.QueryRow(ctx, `SELECT `+adColumns+` FROM ads WHERE id = $1`, id).
		Scan(&a.ID, &a.OwnerID, &a.Title, &a.Body, &a.TargetURL, &a.MediaURL,
			&a.Status, &a.Impressions, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAdStatus performs a guarded transition: the row only changes when
// it is still in the expected status, which protects against concurrent
// admin actions racing each other.
func (r *AdRepository) UpdateAdStatus(ctx context.Context, id, expected, status string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE ads SET status = $1 WHERE id = $2 AND status = $3`, status, id, expected)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListAdsByStatus returns ads in a status ordered oldest first. The
// delivery engine relies on this ordering for deterministic selection.
func (r *AdRepository) ListAdsByStatus(ctx context.Context, status string) ([]domain.Ad, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+adColumns+` FROM ads WHERE status = $1 ORDER BY created_at, id`, status)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanAd)
}

// ListAdsByOwner returns an advertiser's own ads, newest first.
func (r *AdRepository) ListAdsByOwner(ctx context.Context, ownerID string) ([]domain.Ad, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+adColumns+` FROM ads WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanAd)
}

// ListAds returns every ad, newest first. Admin view.
func (r *AdRepository) ListAds(ctx context.Context) ([]domain.Ad, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+adColumns+` FROM ads ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanAd)
}
