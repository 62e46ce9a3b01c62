package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"docsum/internal/llm"
)

// DefaultPrompt is used for summaries when the user has not set one.
const DefaultPrompt = "Please provide a concise summary of this PDF document, highlighting the main points and key insights."

// Settings are the user's saved provider preferences.
type Settings struct {
	APIKey      string  `yaml:"api_key" json:"api_key"`
	BaseURL     string  `yaml:"base_url" json:"base_url"`
	Model       string  `yaml:"model" json:"model"`
	Prompt      string  `yaml:"prompt" json:"prompt"`
	MaxTokens   int     `yaml:"max_tokens" json:"max_tokens"`
	Temperature float64 `yaml:"temperature" json:"temperature"`
	Timeout     int     `yaml:"timeout" json:"timeout"` // seconds
}

// DefaultSettings mirrors the provider defaults of the OpenAI-compatible client.
func DefaultSettings() Settings {
	return Settings{
		BaseURL:     llm.DefaultOpenAIBaseURL,
		Model:       llm.DefaultOpenAIModel,
		Prompt:      DefaultPrompt,
		MaxTokens:   llm.DefaultOpenAIMaxTokens,
		Temperature: llm.DefaultTemperature,
		Timeout:     int(llm.DefaultTimeout / time.Second),
	}
}

// DefaultSettingsPath returns settings.yaml under the user config directory.
func DefaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "docsum", "settings.yaml")
}

// LoadSettings reads path and merges it over DefaultSettings. A missing file
// yields the defaults; a corrupt one yields the defaults and an error.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}

// SaveSettings writes s to path, creating parent directories. The file holds
// an API key, so it is only readable by the owner.
func SaveSettings(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// ClearSettings removes the settings file if present.
func ClearSettings(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove settings: %w", err)
	}
	return nil
}
