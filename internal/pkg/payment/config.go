package payment

import (
	"errors"
	"time"

	"github.com/ManuelReschke/AboCheckout/internal/pkg/env"
)

// CurrencyEUR is the only currency checkouts are charged in.
const CurrencyEUR = "EUR"

// Config holds Stripe configuration
type Config struct {
	SecretKey string
	Timeout   time.Duration
}

// LoadConfig loads payment configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		SecretKey: env.GetEnv("STRIPE_SECRET_KEY", ""),
		Timeout:   env.GetEnvDuration("PAYMENT_TIMEOUT", 20*time.Second),
	}
	if config.SecretKey == "" {
		return nil, errors.New("STRIPE_SECRET_KEY is required")
	}
	return config, nil
}
