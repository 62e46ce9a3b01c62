// Package llm talks to hosted LLM providers behind one capability type.
// The provider is chosen from the configured base URL.
package llm

import (
	"context"
	"strings"
	"time"
)

// Service is the capability every provider client and the Client facade offer.
type Service interface {
	Chat(ctx context.Context, prompt string) (ChatResult, error)
	Summarize(ctx context.Context, text, prompt string) (string, error)
	TestConnection(ctx context.Context) (string, error)
}

// ChatResult is a completion split into optional reasoning and the answer.
// Output is never empty when returned without error.
type ChatResult struct {
	Reasoning *string `json:"reasoning,omitempty"`
	Output    string  `json:"output"`
}

// Config configures a single provider client. Zero fields take the
// provider's defaults when the client is built.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature *float64
	Timeout     time.Duration
}

const (
	DefaultOpenAIBaseURL    = "https://api.openai.com/v1"
	DefaultOpenAIModel      = "gpt-3.5-turbo"
	DefaultOpenAIMaxTokens  = 500
	DefaultAnthropicBaseURL = "https://api.anthropic.com/v1"
	DefaultAnthropicModel   = "claude-3-sonnet-20240229"
	DefaultAnthropicTokens  = 1024
	DefaultTemperature      = 0.7
	DefaultTimeout          = 120 * time.Second

	// ConnectionTestPrompt is the cheap probe sent by TestConnection.
	ConnectionTestPrompt = "Say 'Connection test successful' if you can hear me."
)

type providerDefaults struct {
	baseURL   string
	model     string
	maxTokens int
}

func (c Config) withDefaults(d providerDefaults) Config {
	if c.BaseURL == "" {
		c.BaseURL = d.baseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Model == "" {
		c.Model = d.model
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = d.maxTokens
	}
	if c.Temperature == nil {
		t := DefaultTemperature
		c.Temperature = &t
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}
