// Package info fetches read-only exchange metadata
package info

import (
	"context"
	"time"

	"github.com/oaktrade/go-hyperliquid/rest"
)

// Client provides access to the /info metadata endpoints
type Client struct {
	rest rest.ClientInterface
}

// Config for initializing the Info client
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// New creates a new Info client
func New(cfg Config) *Client {
	return &Client{
		rest: rest.New(rest.Config{
			BaseUrl: cfg.BaseURL,
			Timeout: cfg.Timeout,
		}),
	}
}

// Meta retrieves the perpetuals instrument universe.
func (c *Client) Meta(ctx context.Context) (*Meta, error) {
	var result Meta
	err := c.rest.Post(
		ctx,
		"/info",
		map[string]any{
			"type": "meta",
		},
		&result,
	)
	if err != nil {
		return nil, err
	}

	return &result, nil
}
