package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"marketTags/internal/model"
)

// DefaultTimeout bounds a single subgraph request.
const DefaultTimeout = 30 * time.Second

const maxErrorBody = 512

// Client issues market queries against a subgraph endpoint.
type Client struct {
	http    *http.Client
	timeout time.Duration
	logger  *zap.Logger
}

// Option configures Client.
type Option func(*Client)

// WithHTTPClient sets a custom http.Client. The passed client is never
// modified.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithTimeout sets the per-request timeout, regardless of option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used to report remote failures.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		http:   &http.Client{Timeout: DefaultTimeout},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		httpClient := *c.http
		httpClient.Timeout = c.timeout
		c.http = &httpClient
	}
	return c
}

// QueryMarkets fetches one page of markets created after lastTimestamp.
func (c *Client) QueryMarkets(ctx context.Context, endpoint string, lastTimestamp uint64) ([]model.Market, error) {
	body, err := json.Marshal(graphQLRequest{
		Query:     marketsQuery,
		Variables: map[string]interface{}{"lastTimestamp": lastTimestamp},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &RemoteError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RemoteError{Op: "post query", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteError{Op: "read response", StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remoteErr := &RemoteError{
			Op:         "post query",
			StatusCode: resp.StatusCode,
			Messages:   nonEmpty(truncateBody(respBody)),
		}
		c.logger.Warn("subgraph request failed", zap.Int("status", resp.StatusCode), zap.Strings("messages", remoteErr.Messages))
		return nil, remoteErr
	}

	var parsed marketsResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &RemoteError{Op: "decode response", StatusCode: resp.StatusCode, Err: err}
	}

	if len(parsed.Errors) > 0 {
		messages := make([]string, 0, len(parsed.Errors))
		for _, gqlErr := range parsed.Errors {
			messages = append(messages, gqlErr.Message)
		}
		c.logger.Warn("subgraph returned errors", zap.Strings("messages", messages))
		return nil, &RemoteError{Op: "query markets", StatusCode: resp.StatusCode, Messages: messages}
	}

	if parsed.Data == nil || parsed.Data.Markets == nil {
		return nil, &RemoteError{Op: "query markets", StatusCode: resp.StatusCode, Messages: []string{"response has no data.markets field"}}
	}

	return *parsed.Data.Markets, nil
}

func truncateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		return text[:maxErrorBody] + "..."
	}
	return text
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
