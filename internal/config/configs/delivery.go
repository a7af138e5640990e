package configs

import "time"

// Delivery configures webhook fan-out behaviour and the earning amounts
// credited to endpoint owners. Amounts are fixed-point integers in 1e-8
// currency units, so 250000 is 0.0025.
type Delivery struct {
	// RedirectBase is the externally reachable base URL of this service,
	// used to build the click redirect link embedded in each delivery.
	RedirectBase string `env:"REDIRECT_BASE" envDefault:"http://localhost:8080"`
	// SendDelay is the pause inserted between consecutive webhook sends
	// within one cycle, to stay under the target's rate limits.
	SendDelay time.Duration `env:"SEND_DELAY" envDefault:"300ms"`
	// Timeout bounds each outbound webhook POST.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
	// Earning is credited to the endpoint owner per successful delivery.
	Earning int64 `env:"EARNING" envDefault:"250000"`
	// ClickEarning is credited to the endpoint owner per first click.
	ClickEarning int64 `env:"CLICK_EARNING" envDefault:"1000000"`
}
