package config

import (
	"log/slog"

	"github.com/caarlos0/env/v10"
)

// Config holds process-level runtime configuration read from the environment.
// Provider credentials are not part of it: they travel with each request.
type Config struct {
	// Server
	Port      int    `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"` // "json" or "text"

	// Documents
	MaxFileSizeMB int64 `env:"MAX_FILE_SIZE_MB" envDefault:"10"`

	// Worker transport
	QueueURL             string `env:"QUEUE_URL" envDefault:"nats://127.0.0.1:4222"`
	QueueGroup           string `env:"QUEUE_GROUP" envDefault:"docsum-workers"`
	QueueConnectAttempts int    `env:"QUEUE_CONNECT_ATTEMPTS" envDefault:"5"`
	HealthPort           int    `env:"HEALTH_PORT" envDefault:"8081"`

	// Persisted CLI settings; empty means the user config directory.
	SettingsPath string `env:"DOCSUM_SETTINGS"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
