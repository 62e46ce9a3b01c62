package app

import (
	"strings"
	"time"

	"docsum/internal/llm"
)

// ProviderOptions select and tune the provider for one call. Unset optional
// fields fall back to the provider defaults.
type ProviderOptions struct {
	APIKey      string   `json:"api_key" validate:"required,ne=your-api-key-here"`
	BaseURL     string   `json:"base_url,omitempty"`
	Model       string   `json:"model,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty" validate:"omitempty,gt=0"`
	Temperature *float64 `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
	Timeout     *int     `json:"timeout,omitempty" validate:"omitempty,gt=0"` // seconds
}

func (o *ProviderOptions) normalize() {
	o.APIKey = strings.TrimSpace(o.APIKey)
	o.BaseURL = strings.TrimSpace(o.BaseURL)
	o.Model = strings.TrimSpace(o.Model)
}

func (o ProviderOptions) llmConfig() llm.Config {
	cfg := llm.Config{
		APIKey:      o.APIKey,
		BaseURL:     o.BaseURL,
		Model:       o.Model,
		Temperature: o.Temperature,
	}
	if o.MaxTokens != nil {
		cfg.MaxTokens = *o.MaxTokens
	}
	if o.Timeout != nil {
		cfg.Timeout = time.Duration(*o.Timeout) * time.Second
	}
	return cfg
}

// SummarizeRequest asks for a summary of the PDF at FilePath.
type SummarizeRequest struct {
	ProviderOptions
	FilePath string `json:"file_path" validate:"required"`
	Prompt   string `json:"prompt" validate:"required"`
}

// SummarizeResponse is the envelope returned for SummarizeRequest.
type SummarizeResponse struct {
	Summary string  `json:"summary"`
	Success bool    `json:"success"`
	Error   *string `json:"error"`
}

// ChatRequest is a single-turn prompt.
type ChatRequest struct {
	ProviderOptions
	Prompt string `json:"prompt" validate:"required"`
	// IncludeReasoning returns the model's reasoning block instead of
	// withholding it.
	IncludeReasoning bool `json:"include_reasoning,omitempty"`
}

// ChatResponse is the envelope returned for ChatRequest.
type ChatResponse struct {
	Response *llm.ChatResult `json:"response"`
	Success  bool            `json:"success"`
	Error    *string         `json:"error"`
}

// ConnectionRequest checks credentials and reachability of a provider.
type ConnectionRequest struct {
	APIKey  string `json:"api_key" validate:"required,ne=your-api-key-here"`
	BaseURL string `json:"base_url,omitempty"`
	Model   string `json:"model,omitempty"`
	Timeout *int   `json:"timeout,omitempty" validate:"omitempty,gt=0"`
}

// ConnectionResponse is the envelope returned for ConnectionRequest.
type ConnectionResponse struct {
	Success bool    `json:"success"`
	Message *string `json:"message"`
	Error   *string `json:"error"`
}

// AnalyzeRequest names a PDF to analyze or extract.
type AnalyzeRequest struct {
	FilePath string `json:"file_path" validate:"required"`
}

// AnalyzeResponse describes a PDF without sending it anywhere.
type AnalyzeResponse struct {
	PageCount int     `json:"page_count"`
	Title     string  `json:"title"`
	HasText   bool    `json:"has_text"`
	FileSize  string  `json:"file_size"`
	Success   bool    `json:"success"`
	Error     *string `json:"error"`
}

// ExtractResponse carries the cleaned text of a PDF.
type ExtractResponse struct {
	Content *string `json:"content"`
	Success bool    `json:"success"`
	Error   *string `json:"error"`
}

func errMessage(err error) *string {
	msg := err.Error()
	return &msg
}

