package llm

import (
	"context"
	"strings"
	"unicode/utf8"

	"docsum/internal/reasoning"
)

const (
	// promptReserveTokens is kept back from max_tokens for the prompt itself.
	promptReserveTokens = 200
	charsPerToken       = 4
	truncationMarker    = "...[truncated for length]"
)

// charBudget converts a completion token limit into the number of document
// characters sent along with the prompt.
func charBudget(maxTokens int) int {
	available := maxTokens / 2
	if maxTokens > promptReserveTokens {
		available = maxTokens - promptReserveTokens
	}
	return available * charsPerToken
}

// truncate cuts text to budget characters and appends a marker when it did.
func truncate(text string, budget int) string {
	if utf8.RuneCountInString(text) <= budget {
		return text
	}
	runes := []rune(text)
	return string(runes[:budget]) + truncationMarker
}

type chatter interface {
	Chat(ctx context.Context, prompt string) (ChatResult, error)
}

// summarizeWith builds the summary prompt from a possibly truncated document
// and returns only the user-facing output.
func summarizeWith(ctx context.Context, c chatter, maxTokens int, text, prompt string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &ValidationError{Msg: "No text provided for summarization"}
	}
	if strings.TrimSpace(prompt) == "" {
		return "", &ValidationError{Msg: "No prompt provided"}
	}
	doc := truncate(text, charBudget(maxTokens))
	res, err := c.Chat(ctx, prompt+"\n\nDocument content:\n"+doc)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

func testConnectionWith(ctx context.Context, c chatter) (string, error) {
	res, err := c.Chat(ctx, ConnectionTestPrompt)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

func validatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return &ValidationError{Msg: "No prompt provided for chat"}
	}
	return nil
}

// splitCompletion separates reasoning from the answer and rejects blank answers.
func splitCompletion(content string) (ChatResult, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return ChatResult{}, emptyCompletionError()
	}
	r, out := reasoning.Split(content)
	if out == "" {
		return ChatResult{}, emptyCompletionError()
	}
	return ChatResult{Reasoning: r, Output: out}, nil
}
