package configs

import "time"

// Filter configures the external content-quality filter, an OpenAI-style
// chat completion API. When Enabled is false the delivery engine skips the
// screening step entirely. A failing or ambiguous filter response never
// blocks distribution: the engine fails open.
type Filter struct {
	Enabled bool   `env:"ENABLED" envDefault:"false"`
	APIURL  string `env:"API_URL" envDefault:"https://api.openai.com/v1/chat/completions"`
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"gpt-4o-mini"`
	// Timeout bounds the filter call so a hung API cannot stall a cycle.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"8s"`
}
