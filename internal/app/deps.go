package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"

	"docsum/internal/config"
	"docsum/internal/logger"
	"docsum/internal/pdfdoc"
)

// Deps bundles common runtime dependencies for the binaries.
type Deps struct {
	Config  config.Config
	Log     *slog.Logger
	Service *Service
}

// Build loads env, config, and shared components.
func Build() (Deps, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return Deps{}, err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	return NewDeps(cfg, log, nil), nil
}

// LoadConfig loads an optional .env file and parses the environment.
func LoadConfig() (config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config.Config{}, fmt.Errorf("failed to load environment variables: %w", err)
	}
	return config.Load(), nil
}

// NewDeps assembles Deps from already loaded configuration. A nil factory
// selects the real provider clients.
func NewDeps(cfg config.Config, log *slog.Logger, newLLM LLMFactory) Deps {
	extractor := pdfdoc.NewExtractor(log, pdfdoc.LedongthucLoader{})
	log.Debug("dependencies ready", "max_file_size_mb", cfg.MaxFileSizeMB)
	return Deps{
		Config:  cfg,
		Log:     log,
		Service: NewService(log, extractor, newLLM, cfg.MaxFileSizeMB),
	}
}
