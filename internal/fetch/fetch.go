// Package fetch holds the shared HTTP client for the static-page adapters.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	httpTimeout = 30 * time.Second
	userAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// StatusError is returned for non-2xx responses so callers can tell a fetch
// failure apart from an empty listing page.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d fetching %s", e.Code, e.URL)
}

type Client struct {
	http *http.Client
}

// NewClient constructs a client with a shared timeout-bounded transport.
func NewClient() *Client {
	return &Client{
		http: &http.Client{Timeout: httpTimeout},
	}
}

// Get fetches a URL and returns the response body as a string.
func (c *Client) Get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("http GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body from %s: %w", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{URL: url, Code: resp.StatusCode}
	}
	return string(body), nil
}
