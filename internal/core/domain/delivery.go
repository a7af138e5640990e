package domain

import "time"

// Delivery record statuses.
const (
	DeliverySuccess        = "success"
	DeliveryError          = "error"
	DeliveryFilterRejected = "filter_rejected"
)

// Delivery is one append-only audit record of the distribution cycle. A
// nil WebhookID marks a content-filter rejection where no endpoint was
// attempted. Records are never mutated after creation.
type Delivery struct {
	ID           string
	AdID         string
	WebhookID    *string
	Status       string
	Earning      int64
	ErrorMessage *string
	CreatedAt    time.Time
}

// DeliveryMessage is the payload handed to the outbound webhook client.
// The wire format for the target platform is an adapter concern; the
// redirect URL must survive to the rendered message unchanged so it can
// round-trip through the attribution handler.
type DeliveryMessage struct {
	Title       string
	Body        string
	RedirectURL string
	MediaURL    string
	Footer      string
}

// FilterVerdict is the outcome of the external content-quality screen.
// Failed marks a verdict produced by the fail-open path (filter
// unreachable or ambiguous) rather than an explicit decision.
type FilterVerdict struct {
	Approved  bool
	Reasoning string
	Failed    bool
}
