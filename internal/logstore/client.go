package logstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SnippetLimit caps how much of an error response body is carried in a
// QueryError for diagnostics.
const SnippetLimit = 1200

type Config struct {
	URL      string
	Username string
	Password string
	Timeout  time.Duration
}

type Client struct {
	httpClient *http.Client
	url        string
	username   string
	password   string
}

// QueryError reports a non-2xx response from the log store.
type QueryError struct {
	Status  int
	Snippet string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("log store query failed: status=%d body=%q", e.Status, e.Snippet)
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		url:      strings.TrimRight(cfg.URL, "/"),
		username: cfg.Username,
		password: cfg.Password,
	}
}

// Query posts the SQL text and returns the raw response body. The body is
// newline-delimited JSON and is treated as opaque. Single attempt, no retry.
func (c *Client) Query(ctx context.Context, sql string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(sql))
	if err != nil {
		return nil, fmt.Errorf("build query request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query log store: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, SnippetLimit))
		return nil, &QueryError{
			Status:  resp.StatusCode,
			Snippet: string(snippet),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read query response: %w", err)
	}
	return body, nil
}
