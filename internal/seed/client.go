// Package seed fetches the fixed remote guest list merged in at startup.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
)

// DefaultURL is the placeholder user collection, limited to five records.
const DefaultURL = "https://jsonplaceholder.typicode.com/users?_limit=5"

// Record is one remote entry. Only id and name are consumed; other fields
// in the payload are ignored.
type Record struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	URL        string
	Timeout    time.Duration
	Attempts   uint
	RetryDelay time.Duration
	HTTPClient *http.Client
}

// Client fetches seed records over HTTP.
type Client struct {
	url        string
	attempts   uint
	retryDelay time.Duration
	httpClient *http.Client
}

// NewClient builds a Client from opts.
func NewClient(opts Options) *Client {
	c := &Client{
		url:        opts.URL,
		attempts:   opts.Attempts,
		retryDelay: opts.RetryDelay,
		httpClient: opts.HTTPClient,
	}
	if c.url == "" {
		c.url = DefaultURL
	}
	// retry-go treats 0 attempts as "retry forever".
	if c.attempts == 0 {
		c.attempts = 1
	}
	if c.retryDelay <= 0 {
		c.retryDelay = 500 * time.Millisecond
	}
	if c.httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	return c
}

// URL returns the endpoint the client fetches from.
func (c *Client) URL() string {
	return c.url
}

// Fetch downloads and decodes the seed collection.
func (c *Client) Fetch(ctx context.Context) ([]Record, error) {
	records, err := retry.DoWithData(
		func() ([]Record, error) {
			return c.fetchOnce(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("Seed fetch attempt failed", "attempt", n+1, "url", c.url, "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch seed guests: %w", err)
	}
	return records, nil
}

func (c *Client) fetchOnce(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	slog.Debug("Seed fetched", "url", c.url, "count", len(records))
	return records, nil
}
