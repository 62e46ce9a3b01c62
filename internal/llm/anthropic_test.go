package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnthropicTestClient(t *testing.T, handler http.HandlerFunc) *AnthropicClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	temp := 0.2
	return NewAnthropicClient(Config{APIKey: "ant-key", BaseURL: srv.URL + "/v1", MaxTokens: 300, Temperature: &temp})
}

func anthropicReply(blocks ...map[string]any) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"content":     blocks,
		"stop_reason": "end_turn",
	}
}

func TestAnthropicChat(t *testing.T) {
	c := newAnthropicTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "ant-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		assert.Empty(t, r.Header.Get("Authorization"))

		req := readBody(t, r)
		assert.Equal(t, DefaultAnthropicModel, req["model"])
		assert.Equal(t, float64(300), req["max_tokens"])
		assert.InDelta(t, 0.2, req["temperature"], 1e-9)
		assert.NotContains(t, req, "system")
		msgs := req["messages"].([]any)
		require.Len(t, msgs, 1)
		assert.Equal(t, map[string]any{"role": "user", "content": "Hi"}, msgs[0])

		writeJSON(t, w, http.StatusOK, anthropicReply(
			map[string]any{"type": "tool_use", "id": "t1", "name": "noop", "input": map[string]any{}},
			map[string]any{"type": "text", "text": "<thinking>greet back</thinking> Hello!"},
		))
	})

	res, err := c.Chat(context.Background(), "Hi")
	require.NoError(t, err)
	require.NotNil(t, res.Reasoning)
	assert.Equal(t, "greet back", *res.Reasoning)
	assert.Equal(t, "Hello!", res.Output)
}

func TestAnthropicSummarizeTruncates(t *testing.T) {
	c := newAnthropicTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := readBody(t, r)
		content := req["messages"].([]any)[0].(map[string]any)["content"].(string)
		// 300 max tokens leaves (300-200)*4 = 400 characters of document
		assert.Equal(t, "P\n\nDocument content:\n"+strings.Repeat("z", 400)+truncationMarker, content)
		writeJSON(t, w, http.StatusOK, anthropicReply(map[string]any{"type": "text", "text": "done"}))
	})

	out, err := c.Summarize(context.Background(), strings.Repeat("z", 401), "P")
	require.NoError(t, err)
	assert.Equal(t, "done", out)
}

func TestAnthropicErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    ErrorKind
		message string
	}{
		{
			name:    "authentication",
			status:  http.StatusUnauthorized,
			body:    `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`,
			kind:    KindHTTPStatus,
			message: "API Error: Invalid API key. Please check your API key in settings.",
		},
		{
			name:    "overloaded",
			status:  529,
			body:    `{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`,
			kind:    KindHTTPStatus,
			message: "API Error: AI service is overloaded. Please try again in a moment.",
		},
		{
			name:    "unknown type uses provider message",
			status:  http.StatusBadRequest,
			body:    `{"type":"error","error":{"type":"invalid_request_error","message":"max_tokens: must be positive"}}`,
			kind:    KindHTTPStatus,
			message: "API Error: max_tokens: must be positive",
		},
		{
			name:    "openai codes are not anthropic codes",
			status:  http.StatusBadRequest,
			body:    `{"type":"error","error":{"type":"invalid_api_key","message":"raw text"}}`,
			kind:    KindHTTPStatus,
			message: "API Error: raw text",
		},
		{
			name:    "unparseable",
			status:  http.StatusServiceUnavailable,
			body:    `upstream connect error`,
			kind:    KindHTTPStatus,
			message: "Server error: AI service is temporarily unavailable (upstream connect error)",
		},
		{
			name:   "bad success body",
			status: http.StatusOK,
			body:   `{"content": "oops"}`,
			kind:   KindResponseParse,
		},
		{
			name:    "no text block",
			status:  http.StatusOK,
			body:    `{"content":[]}`,
			kind:    KindNoCompletion,
			message: "No text content in response",
		},
		{
			name:    "blank text",
			status:  http.StatusOK,
			body:    `{"content":[{"type":"text","text":"   "}]}`,
			kind:    KindEmptyCompletion,
			message: "AI service returned empty response",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newAnthropicTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.Chat(context.Background(), "hello")
			require.Error(t, err)
			assert.True(t, IsKind(err, tt.kind), "got %v", err)
			if tt.message != "" {
				assert.Equal(t, tt.message, err.Error())
			} else {
				assert.Contains(t, err.Error(), "Failed to parse API response:")
			}
		})
	}
}

func TestClientForwards(t *testing.T) {
	m := new(MockService)
	p := &stubProvider{MockService: m}
	c := &Client{p: p}

	m.On("Chat", context.Background(), "q").Return(ChatResult{Output: "a"}, nil).Once()
	m.On("Summarize", context.Background(), "t", "p").Return("s", nil).Once()
	m.On("TestConnection", context.Background()).Return("ok", nil).Once()

	res, err := c.Chat(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "a", res.Output)
	sum, err := c.Summarize(context.Background(), "t", "p")
	require.NoError(t, err)
	assert.Equal(t, "s", sum)
	msg, err := c.TestConnection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", msg)
	assert.Equal(t, AnthropicCompatible, c.Kind())
	m.AssertExpectations(t)
}

type stubProvider struct {
	*MockService
}

func (s *stubProvider) Kind() Kind { return AnthropicCompatible }

func (s *stubProvider) provider() {}
