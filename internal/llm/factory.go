package llm

import (
	"fmt"
	"strings"
)

// Kind identifies the wire protocol a provider speaks.
type Kind int

const (
	OpenAICompatible Kind = iota + 1
	AnthropicCompatible
)

func (k Kind) String() string {
	switch k {
	case OpenAICompatible:
		return "openai"
	case AnthropicCompatible:
		return "anthropic"
	default:
		return "unknown"
	}
}

// Provider is a concrete provider client. The unexported method keeps the set
// of implementations closed to this package.
type Provider interface {
	Service
	Kind() Kind
	provider()
}

// openAIHosts are checked before anthropicHost, in order.
var openAIHosts = []string{
	"api.openai.com",
	"api.together.xyz",
	"api.deepseek.com",
	"localhost:1234",
	"localhost:11434",
}

const anthropicHost = "api.anthropic.com"

// Select classifies a base URL by substring. An empty URL means the OpenAI
// default. Unknown URLs are rejected rather than guessed.
func Select(baseURL string) (Kind, error) {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	for _, host := range openAIHosts {
		if strings.Contains(baseURL, host) {
			return OpenAICompatible, nil
		}
	}
	if strings.Contains(baseURL, anthropicHost) {
		return AnthropicCompatible, nil
	}
	return 0, &Error{
		Kind: KindUnsupportedProvider,
		Msg:  fmt.Sprintf("Unsupported base URL: %s. Please use a known provider.", baseURL),
	}
}

// New selects the provider for cfg.BaseURL and wraps it in a Client.
func New(cfg Config) (*Client, error) {
	kind, err := Select(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	switch kind {
	case OpenAICompatible:
		return &Client{p: NewOpenAIClient(cfg)}, nil
	case AnthropicCompatible:
		return &Client{p: NewAnthropicClient(cfg)}, nil
	default:
		return nil, fmt.Errorf("llm: no client for provider kind %v", kind)
	}
}

// NewService is New returning the Service interface, for dependency wiring.
func NewService(cfg Config) (Service, error) {
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}
