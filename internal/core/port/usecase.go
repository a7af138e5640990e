package port

import (
	"context"
	"time"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/domain"
)

// WebhookService manages delivery endpoints for their owners.
type WebhookService interface {
	// Register validates the URL shape, enforces the per-owner quota,
	// rejects duplicates and performs a live connectivity test before
	// persisting the endpoint as active.
	Register(ctx context.Context, ownerID, url, label string) (*domain.Webhook, error)
	// Remove deletes an endpoint after verifying ownership.
	Remove(ctx context.Context, id, ownerID string) error
	ListOwned(ctx context.Context, ownerID string) ([]domain.Webhook, error)
	// Test validates the URL shape and posts one test payload on demand.
	Test(ctx context.Context, url string) error
}

// AdService manages the sponsored-content lifecycle.
type AdService interface {
	Create(ctx context.Context, ownerID string, in CreateAdInput) (*domain.Ad, error)
	// Transition moves an ad between lifecycle states. Only admins may
	// call it and only the allowed moves succeed.
	Transition(ctx context.Context, id, status, actorID string) (*domain.Ad, error)
	ListOwned(ctx context.Context, ownerID string) ([]domain.Ad, error)
	// ListAll is the admin view across all owners.
	ListAll(ctx context.Context, actorID string) ([]domain.Ad, error)
}

// CreateAdInput carries the advertiser-supplied fields of a new ad.
type CreateAdInput struct {
	Title     string
	Body      string
	TargetURL string
	MediaURL  string
}

// CycleOptions parameterises one distribution cycle.
type CycleOptions struct {
	// FilterEnabled routes the selected ad through the external content
	// filter before fan-out.
	FilterEnabled bool
}

// Cycle outcomes reported in the summary.
const (
	OutcomeCompleted      = "completed"
	OutcomeNoContent      = "no_content"
	OutcomeNoEndpoints    = "no_endpoints"
	OutcomeFilterRejected = "filter_rejected"
	OutcomeStoreError     = "store_error"
)

// CycleSummary is the structured result of one distribution cycle. The
// engine always produces one, whatever happened inside the cycle.
type CycleSummary struct {
	Outcome         string    `json:"outcome"`
	AdID            string    `json:"ad_id,omitempty"`
	AdTitle         string    `json:"ad_title,omitempty"`
	Attempted       int       `json:"attempted"`
	Succeeded       int       `json:"succeeded"`
	Failed          int       `json:"failed"`
	Earnings        int64     `json:"earnings"`
	FilterChecked   bool      `json:"filter_checked"`
	FilterApproved  bool      `json:"filter_approved,omitempty"`
	FilterReasoning string    `json:"filter_reasoning,omitempty"`
	Error           string    `json:"error,omitempty"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
}

// DeliveryService runs distribution cycles and exposes the audit log.
type DeliveryService interface {
	// RunCycle executes one distribution cycle end-to-end. It never
	// panics and never returns without a summary.
	RunCycle(ctx context.Context, opts CycleOptions) *CycleSummary
	// ListLog returns recent delivery records, newest first. Admin only.
	ListLog(ctx context.Context, actorID string, limit int) ([]domain.Delivery, error)
}

// ClickResult is the outcome of one attribution request.
type ClickResult struct {
	RedirectURL string
	FirstClick  bool
	Earning     int64
}

// ClickService resolves click redirects and grants first-click earnings.
type ClickService interface {
	// Attribute resolves (adID, webhookID) to the ad's destination URL,
	// granting the fixed earning exactly once per unique
	// (ad, webhook, address) key.
	Attribute(ctx context.Context, adID, webhookID, address string) (*ClickResult, error)
}

// UserService exposes account details and the admin balance override.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	// AdjustBalance applies an admin-ordered balance delta. The only
	// balance mutation outside the delivery and attribution paths.
	AdjustBalance(ctx context.Context, actorID, targetID string, delta int64) (*domain.User, error)
}
