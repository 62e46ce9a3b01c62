package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAITestClient(t *testing.T, handler http.HandlerFunc) (*OpenAIClient, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewOpenAIClient(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1", Model: "gpt-4o-mini"}), &hits
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to encode response: %v", err)
	}
}

func readBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	var req map[string]any
	if err := json.Unmarshal(body, &req); err != nil {
		t.Fatalf("failed to unmarshal body: %v", err)
	}
	return req
}

func openAICompletion(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
}

func TestOpenAIChat(t *testing.T) {
	c, hits := newOpenAITestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		req := readBody(t, r)
		assert.Equal(t, "gpt-4o-mini", req["model"])
		assert.Equal(t, float64(DefaultOpenAIMaxTokens), req["max_tokens"])
		assert.InDelta(t, DefaultTemperature, req["temperature"], 1e-9)

		msgs, ok := req["messages"].([]any)
		require.True(t, ok)
		require.Len(t, msgs, 1)
		msg, _ := msgs[0].(map[string]any)
		assert.Equal(t, "user", msg["role"])
		assert.Equal(t, "What is 2+2?", msg["content"])

		writeJSON(t, w, http.StatusOK, openAICompletion("<think>add them</think>\n4"))
	})

	res, err := c.Chat(context.Background(), "What is 2+2?")
	require.NoError(t, err)
	require.NotNil(t, res.Reasoning)
	assert.Equal(t, "add them", *res.Reasoning)
	assert.Equal(t, "4", res.Output)
	assert.Equal(t, int32(1), hits.Load())
}

func TestOpenAIEmptyInputSkipsNetwork(t *testing.T) {
	c, hits := newOpenAITestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, openAICompletion("unused"))
	})
	ctx := context.Background()

	_, err := c.Chat(ctx, "   ")
	assert.True(t, IsValidation(err))
	assert.Equal(t, "No prompt provided for chat", err.Error())

	_, err = c.Summarize(ctx, "", "prompt")
	assert.True(t, IsValidation(err))
	_, err = c.Summarize(ctx, "text", "\t")
	assert.True(t, IsValidation(err))

	assert.Equal(t, int32(0), hits.Load())
}

func TestOpenAISummarizeDropsReasoning(t *testing.T) {
	c, _ := newOpenAITestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := readBody(t, r)
		msgs := req["messages"].([]any)
		content := msgs[0].(map[string]any)["content"].(string)
		assert.Equal(t, "Summarize this\n\nDocument content:\nsome document", content)
		writeJSON(t, w, http.StatusOK, openAICompletion("<reasoning>skim</reasoning>A short summary."))
	})

	out, err := c.Summarize(context.Background(), "some document", "Summarize this")
	require.NoError(t, err)
	assert.Equal(t, "A short summary.", out)
}

func TestOpenAITestConnection(t *testing.T) {
	c, _ := newOpenAITestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := readBody(t, r)
		msgs := req["messages"].([]any)
		assert.Equal(t, ConnectionTestPrompt, msgs[0].(map[string]any)["content"])
		writeJSON(t, w, http.StatusOK, openAICompletion("Connection test successful"))
	})

	out, err := c.TestConnection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Connection test successful", out)
}

func TestOpenAIErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    ErrorKind
		message string
	}{
		{
			name:    "known error type",
			status:  http.StatusUnauthorized,
			body:    `{"error":{"message":"Incorrect API key provided","type":"invalid_api_key"}}`,
			kind:    KindHTTPStatus,
			message: "API Error: Invalid API key. Please check your API key in settings.",
		},
		{
			name:    "known error code",
			status:  http.StatusTooManyRequests,
			body:    `{"error":{"message":"slow down","type":"requests","code":"rate_limit_exceeded"}}`,
			kind:    KindHTTPStatus,
			message: "API Error: Rate limit exceeded. Please try again in a moment.",
		},
		{
			name:    "quota",
			status:  http.StatusTooManyRequests,
			body:    `{"error":{"message":"quota","type":"insufficient_quota","code":null}}`,
			kind:    KindHTTPStatus,
			message: "API Error: API quota exceeded. Please check your account billing.",
		},
		{
			name:    "unknown type uses provider message",
			status:  http.StatusBadRequest,
			body:    `{"error":{"message":"max_tokens is too large","type":"invalid_request_error"}}`,
			kind:    KindHTTPStatus,
			message: "API Error: max_tokens is too large",
		},
		{
			name:    "unparseable 401",
			status:  http.StatusUnauthorized,
			body:    `nope`,
			kind:    KindHTTPStatus,
			message: "Unauthorized: Invalid API key (nope)",
		},
		{
			name:    "envelope without message",
			status:  http.StatusForbidden,
			body:    `{"error":{"type":"invalid_api_key"}}`,
			kind:    KindHTTPStatus,
			message: `Forbidden: Check your API key permissions ({"error":{"type":"invalid_api_key"}})`,
		},
		{
			name:    "not found",
			status:  http.StatusNotFound,
			body:    `404 page not found`,
			kind:    KindHTTPStatus,
			message: "Not found: Check your base URL and model (404 page not found)",
		},
		{
			name:    "rate limited",
			status:  http.StatusTooManyRequests,
			body:    `busy`,
			kind:    KindHTTPStatus,
			message: "Rate limited: Too many requests (busy)",
		},
		{
			name:    "server error",
			status:  http.StatusBadGateway,
			body:    `<html>bad gateway</html>`,
			kind:    KindHTTPStatus,
			message: "Server error: AI service is temporarily unavailable (<html>bad gateway</html>)",
		},
		{
			name:    "other status",
			status:  http.StatusTeapot,
			body:    `teapot`,
			kind:    KindHTTPStatus,
			message: "Unknown API error (teapot)",
		},
		{
			name:   "unparseable success",
			status: http.StatusOK,
			body:   `not json`,
			kind:   KindResponseParse,
		},
		{
			name:   "choices of the wrong type",
			status: http.StatusOK,
			body:   `{"choices":"oops"}`,
			kind:   KindResponseParse,
		},
		{
			name:   "array body",
			status: http.StatusOK,
			body:   `[]`,
			kind:   KindResponseParse,
		},
		{
			name:   "numeric content",
			status: http.StatusOK,
			body:   `{"choices":[{"message":{"content":123}}]}`,
			kind:   KindResponseParse,
		},
		{
			name:   "null message",
			status: http.StatusOK,
			body:   `{"choices":[{"message":null}]}`,
			kind:   KindResponseParse,
		},
		{
			name:   "missing content",
			status: http.StatusOK,
			body:   `{"choices":[{"message":{"role":"assistant"}}]}`,
			kind:   KindResponseParse,
		},
		{
			name:    "no choices",
			status:  http.StatusOK,
			body:    `{"id":"x","choices":[]}`,
			kind:    KindNoCompletion,
			message: "No response from AI service",
		},
		{
			name:    "blank content",
			status:  http.StatusOK,
			body:    `{"choices":[{"index":0,"message":{"role":"assistant","content":"  \n "}}]}`,
			kind:    KindEmptyCompletion,
			message: "AI service returned empty response",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newOpenAITestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.Chat(context.Background(), "hello")
			require.Error(t, err)
			var pe *Error
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.kind, pe.Kind)
			if tt.kind == KindHTTPStatus {
				assert.Equal(t, tt.status, pe.Status)
			}
			if tt.message != "" {
				assert.Equal(t, tt.message, err.Error())
			} else {
				assert.Contains(t, err.Error(), "Failed to parse API response:")
			}
		})
	}
}

func TestTransportErrors(t *testing.T) {
	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-time.After(2 * time.Second):
			}
		}))
		t.Cleanup(srv.Close)
		t.Cleanup(func() { close(release) })

		c := NewOpenAIClient(Config{APIKey: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
		_, err := c.Chat(context.Background(), "hello")
		assert.True(t, IsKind(err, KindTimeout), "got %v", err)
		assert.Equal(t, "Request timed out. Try increasing the timeout in settings.", err.Error())
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c := NewAnthropicClient(Config{APIKey: "k", BaseURL: url})
		_, err := c.Chat(context.Background(), "hello")
		assert.True(t, IsKind(err, KindConnect), "got %v", err)
		assert.Equal(t, "Failed to connect to AI service. Check your base URL and internet connection.", err.Error())
	})

	t.Run("other network error", func(t *testing.T) {
		c := NewOpenAIClient(Config{APIKey: "k", BaseURL: "ftp://localhost:1234"})
		_, err := c.Chat(context.Background(), "hello")
		assert.True(t, IsKind(err, KindNetwork), "got %v", err)
		assert.Contains(t, err.Error(), "Network error:")
	})
}
