package port

import (
	"context"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/domain"
)

// WebhookSender delivers payloads to external webhook targets.
type WebhookSender interface {
	// Validate checks the destination URL against the strict shape
	// contract without touching the network.
	Validate(url string) error
	// Test synchronously posts one real test payload. A non-2xx response
	// is returned as a *HTTPError.
	Test(ctx context.Context, url string) error
	// Send posts one delivery message with a bounded timeout.
	Send(ctx context.Context, url string, msg domain.DeliveryMessage) error
}

// ContentFilter screens an ad through an external text-completion service.
// Implementations never return an error: when the service is unreachable
// or its answer is ambiguous they fail open with an approved verdict whose
// Failed flag is set.
type ContentFilter interface {
	Review(ctx context.Context, ad *domain.Ad) domain.FilterVerdict
}
