package llm

import (
	"context"
	"encoding/json"
)

const (
	messagesPath     = "/messages"
	anthropicVersion = "2023-06-01"
)

// anthropicErrorMessages maps Anthropic error types to actionable text.
var anthropicErrorMessages = map[string]string{
	"authentication_error": "Invalid API key. Please check your API key in settings.",
	"permission_error":     "Permission denied. Please check your API key permissions.",
	"not_found_error":      "Model not found. Please check your model selection in settings.",
	"rate_limit_error":     "Rate limit exceeded. Please try again in a moment.",
	"overloaded_error":     "AI service is overloaded. Please try again in a moment.",
}

// AnthropicClient calls the Anthropic Messages API.
type AnthropicClient struct {
	cfg  Config
	http httpTransport
}

var _ Provider = (*AnthropicClient)(nil)

// NewAnthropicClient builds a client, filling unset fields with Anthropic defaults.
func NewAnthropicClient(cfg Config) *AnthropicClient {
	cfg = cfg.withDefaults(providerDefaults{
		baseURL:   DefaultAnthropicBaseURL,
		model:     DefaultAnthropicModel,
		maxTokens: DefaultAnthropicTokens,
	})
	return &AnthropicClient{
		cfg: cfg,
		http: newHTTPTransport(cfg.BaseURL, cfg.Timeout, map[string]string{
			"x-api-key":         cfg.APIKey,
			"anthropic-version": anthropicVersion,
		}),
	}
}

func (c *AnthropicClient) Kind() Kind { return AnthropicCompatible }

func (c *AnthropicClient) provider() {}

type anthropicRequest struct {
	Model       string             `json:"model"`
	Messages    []anthropicMessage `json:"messages"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	System      string             `json:"system,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

type anthropicErrorEnvelope struct {
	Type  string `json:"type"`
	Error *struct {
		Type    string  `json:"type"`
		Message *string `json:"message"`
	} `json:"error"`
}

func (c *AnthropicClient) Chat(ctx context.Context, prompt string) (ChatResult, error) {
	if err := validatePrompt(prompt); err != nil {
		return ChatResult{}, err
	}
	req := anthropicRequest{
		Model:       c.cfg.Model,
		Messages:    []anthropicMessage{{Role: "user", Content: prompt}},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: *c.cfg.Temperature,
	}

	status, body, err := c.http.postJSON(ctx, messagesPath, req)
	if err != nil {
		return ChatResult{}, err
	}
	if !isSuccess(status) {
		return ChatResult{}, decodeAnthropicError(status, body)
	}

	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ChatResult{}, parseError(err)
	}
	for _, block := range resp.Content {
		if block.Type == "text" {
			return splitCompletion(block.Text)
		}
	}
	return ChatResult{}, &Error{Kind: KindNoCompletion, Msg: "No text content in response"}
}

func (c *AnthropicClient) Summarize(ctx context.Context, text, prompt string) (string, error) {
	return summarizeWith(ctx, c, c.cfg.MaxTokens, text, prompt)
}

func (c *AnthropicClient) TestConnection(ctx context.Context) (string, error) {
	return testConnectionWith(ctx, c)
}

func decodeAnthropicError(status int, body []byte) *Error {
	var env anthropicErrorEnvelope
	if err := json.Unmarshal(body, &env); err != nil || env.Error == nil || env.Error.Message == nil {
		return statusError(status, body)
	}
	if msg, ok := anthropicErrorMessages[env.Error.Type]; ok {
		return apiError(status, msg)
	}
	return apiError(status, *env.Error.Message)
}
