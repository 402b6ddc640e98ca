package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"bookingbot/internal/storage/pg"
)

// Config holds the application configuration
type Config struct {
	TelegramToken string  `envconfig:"TELEGRAM_BOT_TOKEN"`
	AdminIDs      []int64 `envconfig:"ADMIN_IDS"`

	// Bot mode configuration
	WebhookMode bool   `envconfig:"WEBHOOK_MODE"`
	WebhookURL  string `envconfig:"WEBHOOK_URL"`

	// HTTP server port (also serves the webhook endpoint)
	Port int `envconfig:"PORT" default:"8080"`

	UseMockDB bool `envconfig:"USE_MOCK_DB"`

	Database pg.Config
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if len(c.AdminIDs) == 0 {
		return fmt.Errorf("ADMIN_IDS is required (comma-separated list of Telegram user IDs)")
	}
	if c.WebhookMode && c.WebhookURL == "" {
		return fmt.Errorf("WEBHOOK_URL is required when WEBHOOK_MODE is true")
	}
	if !c.UseMockDB && c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required when USE_MOCK_DB is not set")
	}
	return nil
}
