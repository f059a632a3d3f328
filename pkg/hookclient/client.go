package hookclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultUserAgent = "agentpacks-webhooks/1.0"

// Config configures the outbound webhook client.
type Config struct {
	Timeout   time.Duration
	UserAgent string
}

// Client posts webhook bodies. It never retries and never follows redirects.
type Client struct {
	resty *resty.Client
}

// New creates a Client.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	r := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetRedirectPolicy(resty.NoRedirectPolicy()).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Content-Type", "application/json")

	return &Client{resty: r}
}

// Post sends body to url and returns the response status.
// A transport failure (timeout, refused, DNS) returns status 0 and an error.
func (c *Client) Post(ctx context.Context, url string, headers map[string]string, body []byte) (int, error) {
	resp, err := c.resty.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetBody(body).
		Post(url)
	if err != nil {
		return 0, fmt.Errorf("hookclient.Post: %w", err)
	}
	return resp.StatusCode(), nil
}
