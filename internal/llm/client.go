package llm

import "context"

// Client forwards every call to the provider chosen by New, so callers never
// branch on which provider is behind it.
type Client struct {
	p Provider
}

var _ Service = (*Client)(nil)

// Kind reports which provider the client talks to.
func (c *Client) Kind() Kind { return c.p.Kind() }

func (c *Client) Chat(ctx context.Context, prompt string) (ChatResult, error) {
	return c.p.Chat(ctx, prompt)
}

func (c *Client) Summarize(ctx context.Context, text, prompt string) (string, error) {
	return c.p.Summarize(ctx, text, prompt)
}

func (c *Client) TestConnection(ctx context.Context) (string, error) {
	return c.p.TestConnection(ctx)
}
