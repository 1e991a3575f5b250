package config

import "time"

// BackendConfig contains commerce backend API configuration. The gateway is
// a thin proxy; every catalog, cart, order, and customer-auth call goes to
// this service.
type BackendConfig struct {
	// URL is the base URL of the commerce backend API.
	URL string `env:"URL" envDefault:"http://localhost:3000"`

	// Timeout bounds each backend call.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to backend configuration values.
func (b *BackendConfig) Sanitize() {
	if b.Timeout <= 0 {
		b.Timeout = 10 * time.Second
	}
}
