package configs

import "time"

// Scheduler configures the background distribution loop. The loop runs one
// distribution cycle every Interval for as long as the process lives.
type Scheduler struct {
	// Enabled starts the background loop on startup. When false the engine
	// is only reachable through the on-demand distribution endpoint.
	Enabled bool `env:"ENABLED" envDefault:"true"`
	// Interval is the pause between distribution cycles.
	Interval time.Duration `env:"INTERVAL" envDefault:"60s"`
}
