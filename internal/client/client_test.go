package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/chatwrap/internal/config"
	"github.com/theirongolddev/chatwrap/internal/dashboard"
	"github.com/theirongolddev/chatwrap/internal/pipeline"
	"github.com/theirongolddev/chatwrap/internal/server"
)

const fixtureCSV = `uuid,name,start_time,end_time,duration,dialogue_turns,input_tokens,output_tokens
u1,Alpha,2024-03-05 02:00:00+00:00,2024-03-05 03:00:00+00:00,3600.0,4,100,200
u2,Beta,2024-03-05 06:00:00+00:00,2024-03-05 06:30:00+00:00,1800.0,10,50,70
`

func startServer(t *testing.T, files map[string]string) (*httptest.Server, config.Config) {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	cfg := config.DefaultConfig()
	cfg.General.OutDir = dir
	arts, err := pipeline.NewArtifacts(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(server.New(server.ConfigFrom(cfg), arts).Routes())
	t.Cleanup(ts.Close)
	return ts, cfg
}

var _ dashboard.Source = (*Client)(nil)

func TestClientReadsThroughServer(t *testing.T) {
	ts, cfg := startServer(t, map[string]string{
		"conversation.csv":       fixtureCSV,
		"cluster_summaries.json": `{"1": {"cluster": "B", "nums": 2}, "0": {"cluster": "A", "nums": 7}}`,
	})
	c := New(ts.URL, cfg.Location())
	ctx := context.Background()

	records, err := c.Conversations(ctx)
	if err != nil {
		t.Fatalf("Conversations: %v", err)
	}
	if len(records) != 2 || records[1].Name != "Beta" {
		t.Fatalf("records = %+v", records)
	}

	clusters, err := c.ClusterSummaries(ctx)
	if err != nil {
		t.Fatalf("ClusterSummaries: %v", err)
	}
	if len(clusters) != 2 || clusters[0].ID != "0" {
		t.Fatalf("clusters = %+v", clusters)
	}

	tokens, err := c.TokenStats(ctx)
	if err != nil {
		t.Fatalf("TokenStats: %v", err)
	}
	if tokens.TotalTokens != 420 {
		t.Fatalf("TotalTokens = %d, want 420", tokens.TotalTokens)
	}

	// duration_stats.json is absent: computed from the CSV.
	ds, err := c.DurationStats(ctx)
	if err != nil {
		t.Fatalf("DurationStats: %v", err)
	}
	if ds.TotalDuration != "1.50 hrs" {
		t.Fatalf("TotalDuration = %q, want 1.50 hrs", ds.TotalDuration)
	}
}

func TestClientSurfacesServerMessage(t *testing.T) {
	ts, cfg := startServer(t, nil)
	c := New(ts.URL, cfg.Location())

	_, err := c.ClusterSummaries(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != 500 || apiErr.Message != "Failed to load cluster summaries" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}

func TestClientUnreachable(t *testing.T) {
	ts, _ := startServer(t, nil)
	url := ts.URL
	ts.Close()

	_, err := New(url, time.UTC).TokenStats(context.Background())
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("err = %v, want ErrUnreachable", err)
	}
}

func TestNewNormalizesURL(t *testing.T) {
	if got := New("127.0.0.1:3000/", nil).BaseURL(); got != "http://127.0.0.1:3000" {
		t.Fatalf("BaseURL = %q", got)
	}
	if got := New("https://example.test", nil).BaseURL(); got != "https://example.test" {
		t.Fatalf("BaseURL = %q", got)
	}
}
