package config

import "time"

// Webhook configures installment event delivery
type Webhook struct {
	Enabled         bool                           `mapstructure:"enabled"`
	Topic           string                         `mapstructure:"topic"`
	MaxRetries      int                            `mapstructure:"max_retries"`
	InitialInterval time.Duration                  `mapstructure:"initial_interval"`
	MaxInterval     time.Duration                  `mapstructure:"max_interval"`
	Multiplier      float64                        `mapstructure:"multiplier"`
	MaxElapsedTime  time.Duration                  `mapstructure:"max_elapsed_time"`
	Tenants         map[string]TenantWebhookConfig `mapstructure:"tenants"`
}

// TenantWebhookConfig is the delivery target for one tenant
type TenantWebhookConfig struct {
	Endpoint       string            `mapstructure:"endpoint"`
	Headers        map[string]string `mapstructure:"headers"`
	Enabled        bool              `mapstructure:"enabled"`
	ExcludedEvents []string          `mapstructure:"excluded_events"`
}
