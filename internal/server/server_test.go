package server

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/chatwrap/internal/config"
	"github.com/theirongolddev/chatwrap/internal/model"
	"github.com/theirongolddev/chatwrap/internal/pipeline"
)

const fixtureCSV = `uuid,name,start_time,end_time,duration,dialogue_turns,input_tokens,output_tokens
u1,Alpha,2024-03-05 02:00:00+00:00,2024-03-05 03:00:00+00:00,3600.0,4,100,200
u2,Beta,2024-03-05 06:00:00+00:00,2024-03-05 06:30:00+00:00,1800.0,10,50,70
u3,Gamma,2024-08-10 13:00:00+00:00,2024-08-10 13:10:00+00:00,600.0,2,1,2
`

const fixtureClusters = `{"3": {"cluster": "C", "nums": 1}, "-1": {"cluster": "noise", "nums": 9}, "0": {"cluster": "A", "nums": 5}}`

func writeFixture(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func newTestServer(t *testing.T, files map[string]string) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	writeFixture(t, dir, files)

	cfg := config.DefaultConfig()
	cfg.General.OutDir = dir
	arts, err := pipeline.NewArtifacts(cfg, nil)
	if err != nil {
		t.Fatalf("NewArtifacts: %v", err)
	}
	s := New(ConfigFrom(cfg), arts)
	s.now = func() time.Time { return time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC) }
	return s, dir
}

func get(t *testing.T, h http.Handler, path string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestMissingArtifactsReturnFixedErrors(t *testing.T) {
	s, _ := newTestServer(t, nil)
	h := s.Routes()

	cases := []struct {
		path string
		msg  string
	}{
		{"/api/cluster-summaries", "Failed to load cluster summaries"},
		{"/api/conversation", "Failed to load conversation data"},
		{"/api/duration-stats", "Failed to load duration stats"},
		{"/api/time-patterns", "Failed to load time patterns"},
		{"/api/token-stats", "Failed to fetch token statistics"},
	}
	for _, tc := range cases {
		rec := get(t, h, tc.path)
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("%s: status = %d, want 500", tc.path, rec.Code)
			continue
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("%s: content type = %q", tc.path, ct)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Errorf("%s: decode: %v", tc.path, err)
			continue
		}
		if len(body) != 1 || body["error"] != tc.msg {
			t.Errorf("%s: body = %v, want error %q", tc.path, body, tc.msg)
		}
	}
}

func TestMalformedJSONReturnsSameMessage(t *testing.T) {
	s, _ := newTestServer(t, map[string]string{"cluster_summaries.json": "{not json"})
	rec := get(t, s.Routes(), "/api/cluster-summaries")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Failed to load cluster summaries") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestClusterSummariesPassthroughKeepsOrder(t *testing.T) {
	s, _ := newTestServer(t, map[string]string{"cluster_summaries.json": fixtureClusters})
	rec := get(t, s.Routes(), "/api/cluster-summaries")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	want := `{"3":{"cluster":"C","nums":1},"-1":{"cluster":"noise","nums":9},"0":{"cluster":"A","nums":5}}`
	if got := rec.Body.String(); got != want {
		t.Fatalf("body = %s, want %s", got, want)
	}
}

func TestConversationIsRawCSV(t *testing.T) {
	s, _ := newTestServer(t, map[string]string{"conversation.csv": fixtureCSV})
	rec := get(t, s.Routes(), "/api/conversation")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("content type = %q, want text/csv", ct)
	}
	if rec.Body.String() != fixtureCSV {
		t.Fatal("csv body was altered")
	}
}

func TestConversationIsCompressedWhenAccepted(t *testing.T) {
	var b strings.Builder
	b.WriteString("uuid,name,start_time\n")
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&b, "u%d,chat %d,2024-03-05 02:00:00+00:00\n", i, i)
	}
	s, _ := newTestServer(t, map[string]string{"conversation.csv": b.String()})

	rec := get(t, s.Routes(), "/api/conversation", "Accept-Encoding", "gzip")
	if enc := rec.Header().Get("Content-Encoding"); enc != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", enc)
	}
	zr, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	body, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != b.String() {
		t.Fatal("decompressed body differs from csv")
	}
}

func TestStatsFromConversations(t *testing.T) {
	s, _ := newTestServer(t, map[string]string{"conversation.csv": fixtureCSV})
	h := s.Routes()

	rec := get(t, h, "/api/token-stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("token-stats status = %d", rec.Code)
	}
	var tokens model.TokenStats
	if err := json.Unmarshal(rec.Body.Bytes(), &tokens); err != nil {
		t.Fatal(err)
	}
	if tokens.InputTokens != 151 || tokens.OutputTokens != 272 || tokens.TotalTokens != 423 {
		t.Fatalf("tokens = %+v", tokens)
	}

	rec = get(t, h, "/api/time-patterns")
	if rec.Code != http.StatusOK {
		t.Fatalf("time-patterns status = %d", rec.Code)
	}
	var patterns model.TimePatterns
	if err := json.Unmarshal(rec.Body.Bytes(), &patterns); err != nil {
		t.Fatal(err)
	}
	// Asia/Shanghai: 02:00Z -> 10, 06:00Z -> 14, 13:00Z -> 21.
	if patterns.HourlyPattern["10"] != 1 || patterns.HourlyPattern["14"] != 1 || patterns.HourlyPattern["21"] != 1 {
		t.Fatalf("hourly = %v", patterns.HourlyPattern)
	}
}

func TestDashboardDegradesInsteadOfFailing(t *testing.T) {
	s, _ := newTestServer(t, map[string]string{"cluster_summaries.json": fixtureClusters})
	rec := get(t, s.Routes(), "/api/dashboard")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var v struct {
		Conversations int              `json:"conversations"`
		TopTopics     []model.TopicBar `json:"top_topics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatal(err)
	}
	if v.Conversations != 0 {
		t.Fatalf("conversations = %d, want 0", v.Conversations)
	}
	if len(v.TopTopics) != 2 || v.TopTopics[0].Name != "A" {
		t.Fatalf("top topics = %+v", v.TopTopics)
	}
}

func TestExportPNG(t *testing.T) {
	s, _ := newTestServer(t, map[string]string{"conversation.csv": fixtureCSV})
	rec := get(t, s.Routes(), "/api/export?format=png")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type = %q", ct)
	}
	_, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
	if err != nil {
		t.Fatalf("parse disposition: %v", err)
	}
	if want := "Claude年度总结-2026年10月17日.png"; params["filename"] != want {
		t.Fatalf("filename = %q, want %q", params["filename"], want)
	}
	if !strings.HasPrefix(rec.Body.String(), "\x89PNG") {
		t.Fatal("body is not a png")
	}
}

func TestExportUnknownFormat(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := get(t, s.Routes(), "/api/export?format=gif")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPageUsesRequestedTheme(t *testing.T) {
	s, _ := newTestServer(t, map[string]string{"conversation.csv": fixtureCSV})
	rec := get(t, s.Routes(), "/?theme=tokyo-night")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "#1A1B26") {
		t.Fatal("page should use the tokyo-night background")
	}
}

func TestHealthAndStatus(t *testing.T) {
	s, dir := newTestServer(t, map[string]string{"conversation.csv": fixtureCSV})
	s.refresh(context.Background())
	h := s.Routes()

	if rec := get(t, h, "/healthz"); rec.Code != http.StatusOK || rec.Body.String() != "ok\n" {
		t.Fatalf("healthz = %d %q", rec.Code, rec.Body.String())
	}

	rec := get(t, h, "/v1/status")
	var st Status
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatal(err)
	}
	if st.OutDir != dir || st.RefreshCount != 1 || st.Summary.Conversations != 3 {
		t.Fatalf("status = %+v", st)
	}
	if len(st.Summary.Artifacts) != 5 {
		t.Fatalf("artifacts = %d, want 5", len(st.Summary.Artifacts))
	}
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/token-stats", nil)
	req.Header.Set("Origin", "http://example.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Fatal("missing Access-Control-Allow-Origin")
	}
}
