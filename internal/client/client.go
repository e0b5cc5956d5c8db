// Package client reads dashboard inputs from a running chatwrap server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/theirongolddev/chatwrap/internal/model"
	"github.com/theirongolddev/chatwrap/internal/pipeline"
	"github.com/theirongolddev/chatwrap/internal/server"
	"github.com/theirongolddev/chatwrap/internal/source"
)

const (
	requestTimeout = 10 * time.Second
	maxBodySize    = 256 << 20 // conversation.csv can be large
	userAgent      = "chatwrap-cli/1.0"
)

// ErrUnreachable indicates the server could not be contacted.
var ErrUnreachable = errors.New("client: server unreachable")

// APIError is a non-2xx answer. Message is the server's {"error": ...} text
// when present.
type APIError struct {
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("client: %s: %s (HTTP %d)", e.Path, e.Message, e.Status)
	}
	return fmt.Sprintf("client: %s: unexpected status %d", e.Path, e.Status)
}

// Client fetches artifacts over HTTP. It satisfies dashboard.Source.
type Client struct {
	baseURL string
	loc     *time.Location
	http    *http.Client
}

// New creates a client for the server at baseURL ("127.0.0.1:3000" or a
// full URL). Naive CSV timestamps are read in loc.
func New(baseURL string, loc *time.Location) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Client{
		baseURL: baseURL,
		loc:     loc,
		http:    &http.Client{},
	}
}

// BaseURL returns the normalized server URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Conversations downloads conversation.csv and parses it locally.
func (c *Client) Conversations(ctx context.Context) ([]model.ConversationRecord, error) {
	body, err := c.get(ctx, "/api/conversation")
	if err != nil {
		return nil, err
	}
	res, err := source.ParseConversations(bytes.NewReader(body), c.loc)
	if err != nil {
		return nil, fmt.Errorf("client: parsing conversations: %w", err)
	}
	return res.Records, nil
}

// ClusterSummaries fetches the cluster mapping in document order.
func (c *Client) ClusterSummaries(ctx context.Context) (model.ClusterSummaries, error) {
	body, err := c.get(ctx, "/api/cluster-summaries")
	if err != nil {
		return nil, err
	}
	clusters, err := source.DecodeClusters(body)
	if err != nil {
		return nil, fmt.Errorf("client: parsing cluster summaries: %w", err)
	}
	return clusters, nil
}

// DurationStats fetches duration_stats.json, computing it from the
// conversations when the server has none.
func (c *Client) DurationStats(ctx context.Context) (model.DurationStats, error) {
	var ds model.DurationStats
	err := c.getJSON(ctx, "/api/duration-stats", &ds)
	if err == nil {
		return ds, nil
	}
	records, cerr := c.Conversations(ctx)
	if cerr != nil {
		return model.DurationStats{}, err
	}
	return pipeline.ComputeDurationStats(records), nil
}

// TimePatterns fetches the hourly and seasonal counts.
func (c *Client) TimePatterns(ctx context.Context) (model.TimePatterns, error) {
	var tp model.TimePatterns
	err := c.getJSON(ctx, "/api/time-patterns", &tp)
	return tp, err
}

// TokenStats fetches the token totals.
func (c *Client) TokenStats(ctx context.Context) (model.TokenStats, error) {
	var ts model.TokenStats
	err := c.getJSON(ctx, "/api/token-stats", &ts)
	return ts, err
}

// Status fetches /v1/status.
func (c *Client) Status(ctx context.Context) (server.Status, error) {
	var st server.Status
	err := c.getJSON(ctx, "/v1/status", &st)
	return st, err
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	body, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("client: parsing %s: %w", path, err)
	}
	return nil
}

// get performs a GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("client: creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("client: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Path: path, Status: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil {
			apiErr.Message = payload.Error
		}
		return nil, apiErr
	}
	return body, nil
}
