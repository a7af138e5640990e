package port

import (
	"context"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/domain"
)

// UserRepository persists marketplace accounts. Balance moves only through
// AdjustBalance, which must be an atomic increment in the store.
type UserRepository interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	CreateUser(ctx context.Context, u *domain.User) error
	// AdjustBalance applies balance = balance + delta atomically.
	AdjustBalance(ctx context.Context, id string, delta int64) error
}

// AdRepository persists sponsored content.
type AdRepository interface {
	CreateAd(ctx context.Context, ad *domain.Ad) error
	GetAd(ctx context.Context, id string) (*domain.Ad, error)
	// UpdateAdStatus moves the ad to status only when it is still in
	// expected, returning whether a row changed.
	UpdateAdStatus(ctx context.Context, id, expected, status string) (bool, error)
	// ListAdsByStatus returns ads in the given status ordered by
	// (created_at, id) ascending, which makes engine selection
	// deterministic.
	ListAdsByStatus(ctx context.Context, status string) ([]domain.Ad, error)
	ListAdsByOwner(ctx context.Context, ownerID string) ([]domain.Ad, error)
	ListAds(ctx context.Context) ([]domain.Ad, error)
}

// WebhookRepository persists delivery endpoints.
type WebhookRepository interface {
	CreateWebhook(ctx context.Context, w *domain.Webhook) error
	GetWebhook(ctx context.Context, id string) (*domain.Webhook, error)
	CountWebhooksByOwner(ctx context.Context, ownerID string) (int, error)
	// DeleteOwnedWebhook removes the endpoint only when it belongs to
	// ownerID, returning whether a row was deleted.
	DeleteOwnedWebhook(ctx context.Context, id, ownerID string) (bool, error)
	// ListActiveWebhooks returns a snapshot for one fan-out cycle.
	ListActiveWebhooks(ctx context.Context) ([]domain.Webhook, error)
	ListWebhooksByOwner(ctx context.Context, ownerID string) ([]domain.Webhook, error)
}

// DeliveryRepository appends audit records for the distribution cycle. The
// success and failure writers bundle every side effect of one attempt into
// a single transaction so counters, impressions and earnings cannot be
// applied partially without surfacing an error.
type DeliveryRepository interface {
	// RecordSuccess appends a success record, increments the webhook sent
	// counter, stamps last_success/last_sent, clears last_error,
	// increments the ad impression counter and credits the endpoint
	// owner's balance with rec.Earning.
	RecordSuccess(ctx context.Context, rec *domain.Delivery) error
	// RecordFailure appends an error record, increments the webhook error
	// counter and overwrites last_error/last_sent.
	RecordFailure(ctx context.Context, rec *domain.Delivery) error
	// RecordFilterRejection appends a record with no endpoint reference.
	RecordFilterRejection(ctx context.Context, rec *domain.Delivery) error
	ListDeliveries(ctx context.Context, limit int) ([]domain.Delivery, error)
}

// ClickRepository implements the attribution ledger. Attribute must be a
// single atomic check-and-grant so that two concurrent requests with the
// same key produce exactly one winner.
type ClickRepository interface {
	// Attribute upserts the (adID, webhookID, address) key. On first
	// occurrence it stores earning and credits the webhook owner's
	// balance in the same transaction, returning true. Repeats bump the
	// hit counter and return false.
	Attribute(ctx context.Context, adID, webhookID, address string, earning int64) (bool, error)
}
