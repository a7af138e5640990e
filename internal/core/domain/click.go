package domain

import "time"

// Click aggregates attribution events for one (ad, webhook, address)
// dedup key. The first occurrence of a key grants the earning; repeats
// only bump Hits. A key can never become "first" again.
type Click struct {
	AdID        string
	WebhookID   string
	Address     string
	Hits        int64
	Earning     int64
	FirstSeenAt time.Time
	LastSeenAt  time.Time
}
