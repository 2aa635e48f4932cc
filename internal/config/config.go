package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`

	// Server
	Port     int    `env:"PORT" envDefault:"3000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Invoices
	PageCacheTTL          time.Duration `env:"PAGE_CACHE_TTL" envDefault:"5m"`
	MutationRatePerMinute int           `env:"MUTATION_RATE_PER_MINUTE" envDefault:"60"`
	StrictMissingInvoice  bool          `env:"STRICT_MISSING_INVOICE" envDefault:"false"`

	// Telegram logging
	BotToken          string `env:"BOT_TOKEN"`
	LogTelegramChatID int64  `env:"LOG_TELEGRAM_CHAT_ID"`
	LogTopicError     int    `env:"LOG_TOPIC_ERROR"`
	LogTopicInvoices  int    `env:"LOG_TOPIC_INVOICES"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.MutationRatePerMinute < 0 {
		return nil, fmt.Errorf("parse config: MUTATION_RATE_PER_MINUTE must not be negative")
	}
	return cfg, nil
}

// TelegramEnabled reports whether mutation notifications should be sent.
func (c *Config) TelegramEnabled() bool {
	return c.BotToken != "" && c.LogTelegramChatID != 0
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
