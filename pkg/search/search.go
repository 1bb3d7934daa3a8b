// Package search provides the web search and page fetch client used by
// company research.
package search

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kart-io/brokergpt/pkg/utils/httpclient"
	"github.com/kart-io/brokergpt/pkg/utils/json"
)

// Result is one web search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"link"`
	Snippet string `json:"snippet"`
}

// Provider performs web searches and raw page fetches.
type Provider interface {
	// Search runs a query and returns ranked results.
	Search(ctx context.Context, query string) ([]Result, error)

	// Fetch downloads a page and returns its raw body.
	Fetch(ctx context.Context, url string) (string, error)
}

// Config holds the search client configuration.
type Config struct {
	// Endpoint is the JSON search API endpoint.
	Endpoint string `json:"endpoint" mapstructure:"endpoint"`

	// APIKey authenticates against the search API.
	APIKey string `json:"api_key" mapstructure:"api_key"`

	// Timeout is the per-request timeout.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`

	// MaxResults caps the number of results returned per query.
	MaxResults int `json:"max_results" mapstructure:"max_results"`
}

// DefaultConfig returns the default search configuration.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:   "https://google.serper.dev/search",
		Timeout:    20 * time.Second,
		MaxResults: 5,
	}
}

// Client implements Provider over a serper-style JSON search API.
type Client struct {
	config *Config
	client *httpclient.Client
}

var _ Provider = (*Client)(nil)

// NewClient creates a search client from the config.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("search: api_key is required")
	}
	return &Client{
		config: cfg,
		client: httpclient.NewClient(cfg.Timeout, 1),
	}, nil
}

type searchRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num,omitempty"`
}

type searchResponse struct {
	Organic []Result `json:"organic"`
}

// Search runs a query against the search API.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	body, err := json.Marshal(searchRequest{Query: query, Num: c.config.MaxResults})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.config.APIKey)

	var resp searchResponse
	if err := c.client.DoJSON(req, &resp); err != nil {
		return nil, err
	}

	results := resp.Organic
	if c.config.MaxResults > 0 && len(results) > c.config.MaxResults {
		results = results[:c.config.MaxResults]
	}
	return results, nil
}

// Fetch downloads a page body for extraction.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create fetch request: %w", err)
	}
	req.Header.Set("User-Agent", "brokergpt-research/1.0")

	return c.client.DoText(req)
}
