package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// httpTransport posts JSON to one provider with its auth headers applied.
// The timeout belongs to the client instance.
type httpTransport struct {
	client  *http.Client
	baseURL string
	headers map[string]string
}

func newHTTPTransport(baseURL string, timeout time.Duration, headers map[string]string) httpTransport {
	return httpTransport{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		headers: headers,
	}
}

// postJSON returns the status code and raw body of any response the provider
// sent. Only failures to get a response are returned as errors.
func (t httpTransport) postJSON(ctx context.Context, path string, payload any) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, &Error{Kind: KindSerialization, Msg: fmt.Sprintf("Failed to encode request: %v", err), Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, &Error{Kind: KindNetwork, Msg: fmt.Sprintf("Network error: %v", err), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, nil, transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, transportError(err)
	}
	return resp.StatusCode, respBody, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
