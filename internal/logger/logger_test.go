package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
)

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	if got := Level(); got != slog.LevelWarn {
		t.Fatalf("Level() = %v, want WARN", got)
	}
	t.Setenv("LOG_LEVEL", "")
	if got := Level(); got != slog.LevelInfo {
		t.Fatalf("Level() = %v, want INFO", got)
	}
}

func TestMiddlewareAddsRequestID(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	t.Setenv("LOG_LEVEL", "info")
	Setup(&buf, JSON)

	h := middleware.RequestID(Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Ctx(r.Context()).Info("handled")
	})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if id, _ := line["req_id"].(string); id == "" {
		t.Fatalf("log line missing req_id: %v", line)
	}
}

func TestCtxFallsBackToDefault(t *testing.T) {
	if Ctx(context.Background()) != slog.Default() {
		t.Fatal("Ctx without logger should return slog.Default()")
	}
}
