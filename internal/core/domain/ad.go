package domain

import "time"

// Ad lifecycle states. Ads always start pending, go public only through an
// admin approval and can never leave stopped.
const (
	AdPending = "pending"
	AdPublic  = "public"
	AdStopped = "stopped"
)

// Ad is a piece of sponsored content. Impressions is monotonic and is
// incremented once per successful webhook delivery, never on attempts.
type Ad struct {
	ID          string
	OwnerID     string
	Title       string
	Body        string
	TargetURL   string
	MediaURL    string
	Status      string
	Impressions int64
	CreatedAt   time.Time
}

// adTransitions enumerates the allowed lifecycle moves.
var adTransitions = map[string][]string{
	AdPending: {AdPublic, AdStopped},
	AdPublic:  {AdStopped},
	AdStopped: {},
}

// CanTransition reports whether an ad may move from its current status to
// the given one.
func (a *Ad) CanTransition(to string) bool {
	for _, s := range adTransitions[a.Status] {
		if s == to {
			return true
		}
	}
	return false
}
