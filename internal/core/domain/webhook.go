package domain

import "time"

// MaxWebhooksPerOwner is the hard cap on concurrently held endpoints,
// enforced at registration time.
const MaxWebhooksPerOwner = 3

// Webhook is a registered delivery endpoint owned by a shower. Counters
// are cumulative; LastError holds only the most recent failure and is
// cleared on the next success. Endpoints are never deactivated
// automatically: repeated failures only accumulate in ErrorCount.
type Webhook struct {
	ID          string
	OwnerID     string
	URL         string
	Label       string
	Active      bool
	SentCount   int64
	ErrorCount  int64
	LastSuccess *time.Time
	LastSent    *time.Time
	LastError   *string
	CreatedAt   time.Time
}
