package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go/v3"
)

const chatCompletionsPath = "/chat/completions"

// openAIErrorMessages maps OpenAI error types and codes to actionable text.
var openAIErrorMessages = map[string]string{
	"invalid_api_key":     "Invalid API key. Please check your API key in settings.",
	"insufficient_quota":  "API quota exceeded. Please check your account billing.",
	"model_not_found":     "Model not found. Please check your model selection in settings.",
	"rate_limit_exceeded": "Rate limit exceeded. Please try again in a moment.",
}

// OpenAIClient calls an OpenAI-compatible Chat Completions endpoint
// (OpenAI, Together, DeepSeek, LM Studio, Ollama).
type OpenAIClient struct {
	cfg  Config
	http httpTransport
}

var _ Provider = (*OpenAIClient)(nil)

// NewOpenAIClient builds a client, filling unset fields with OpenAI defaults.
func NewOpenAIClient(cfg Config) *OpenAIClient {
	cfg = cfg.withDefaults(providerDefaults{
		baseURL:   DefaultOpenAIBaseURL,
		model:     DefaultOpenAIModel,
		maxTokens: DefaultOpenAIMaxTokens,
	})
	return &OpenAIClient{
		cfg: cfg,
		http: newHTTPTransport(cfg.BaseURL, cfg.Timeout, map[string]string{
			"Authorization": "Bearer " + cfg.APIKey,
		}),
	}
}

func (c *OpenAIClient) Kind() Kind { return OpenAICompatible }

func (c *OpenAIClient) provider() {}

func (c *OpenAIClient) Chat(ctx context.Context, prompt string) (ChatResult, error) {
	if err := validatePrompt(prompt); err != nil {
		return ChatResult{}, err
	}
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		MaxTokens:   openai.Int(int64(c.cfg.MaxTokens)),
		Temperature: openai.Float(*c.cfg.Temperature),
	}

	status, body, err := c.http.postJSON(ctx, chatCompletionsPath, params)
	if err != nil {
		return ChatResult{}, err
	}
	if !isSuccess(status) {
		return ChatResult{}, decodeOpenAIError(status, body)
	}

	content, err := decodeOpenAICompletion(body)
	if err != nil {
		return ChatResult{}, err
	}
	return splitCompletion(content)
}

// decodeOpenAICompletion returns the first choice's content. The SDK decoder
// tolerates shape mismatches and only records them in the JSON metadata, so
// the required fields are checked there.
func decodeOpenAICompletion(body []byte) (string, error) {
	var completion openai.ChatCompletion
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", parseError(err)
	}
	if !completion.JSON.Choices.Valid() {
		return "", parseError(fmt.Errorf("missing or malformed field `choices`"))
	}
	if len(completion.Choices) == 0 {
		return "", &Error{Kind: KindNoCompletion, Msg: "No response from AI service"}
	}
	choice := completion.Choices[0]
	if !choice.JSON.Message.Valid() || !choice.Message.JSON.Content.Valid() {
		return "", parseError(fmt.Errorf("missing or malformed field `choices[0].message.content`"))
	}
	return choice.Message.Content, nil
}

func (c *OpenAIClient) Summarize(ctx context.Context, text, prompt string) (string, error) {
	return summarizeWith(ctx, c, c.cfg.MaxTokens, text, prompt)
}

func (c *OpenAIClient) TestConnection(ctx context.Context) (string, error) {
	return testConnectionWith(ctx, c)
}

type openAIErrorEnvelope struct {
	Error *struct {
		Message *string `json:"message"`
		Type    string  `json:"type"`
		Code    any     `json:"code"`
	} `json:"error"`
}

func decodeOpenAIError(status int, body []byte) *Error {
	var env openAIErrorEnvelope
	if err := json.Unmarshal(body, &env); err != nil || env.Error == nil || env.Error.Message == nil {
		return statusError(status, body)
	}
	if msg, ok := openAIErrorMessages[env.Error.Type]; ok {
		return apiError(status, msg)
	}
	if code, ok := env.Error.Code.(string); ok {
		if msg, ok := openAIErrorMessages[code]; ok {
			return apiError(status, msg)
		}
	}
	return apiError(status, *env.Error.Message)
}
