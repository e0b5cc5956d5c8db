// Package server serves the dashboard API, the HTML page and a stream of
// artifact change events.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/klauspost/compress/gzhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/theirongolddev/chatwrap/internal/config"
	"github.com/theirongolddev/chatwrap/internal/logger"
	"github.com/theirongolddev/chatwrap/internal/pipeline"
)

// Config controls the server runtime behavior.
type Config struct {
	Addr           string
	AllowedOrigins []string
	Watch          bool
	Interval       time.Duration
	EventsBuffer   int
	Tracing        bool
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	Theme          string
	ExportLoc      *time.Location
	Year           int
}

// ConfigFrom maps file settings onto a server Config.
func ConfigFrom(c config.Config) Config {
	return Config{
		Addr:           c.Server.Addr,
		AllowedOrigins: c.Server.AllowedOrigins,
		Watch:          c.Server.Watch,
		Interval:       time.Duration(c.Server.PollIntervalSec) * time.Second,
		EventsBuffer:   c.Server.EventsBuffer,
		Tracing:        c.Server.Tracing,
		ReadTimeout:    time.Duration(c.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout:   time.Duration(c.Server.WriteTimeoutSec) * time.Second,
		Theme:          c.Appearance.WebTheme,
		ExportLoc:      c.ExportLocation(),
		Year:           c.General.Year,
	}
}

// Server provides the HTTP API and the artifact refresh loop.
type Server struct {
	cfg  Config
	arts *pipeline.Artifacts
	now  func() time.Time

	mu           sync.RWMutex
	startedAt    time.Time
	lastRefresh  time.Time
	refreshCount int64
	lastError    string
	watching     bool
	hasSnapshot  bool
	snapshot     Snapshot
	nextEventID  int64
	events       []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a server reading artifacts through arts.
func New(cfg Config, arts *pipeline.Artifacts) *Server {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 30 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:3000"
	}
	if cfg.Theme == "" {
		cfg.Theme = "dawn"
	}
	if cfg.ExportLoc == nil {
		cfg.ExportLoc = time.UTC
	}

	return &Server{
		cfg:       cfg,
		arts:      arts,
		now:       time.Now,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	if s.cfg.Tracing {
		r.Use(SpanEnricher)
	}

	r.Get("/healthz", s.handleHealth)
	r.Get("/v1/status", s.handleStatus)
	r.Get("/v1/events", s.handleEvents)
	r.Get("/v1/stream", s.handleStream)

	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler { return gzhttp.GzipHandler(next) })

		r.Get("/", s.handlePage)
		r.Route("/api", func(r chi.Router) {
			r.Get("/cluster-summaries", s.handleClusterSummaries)
			r.Get("/conversation", s.handleConversation)
			r.Get("/duration-stats", s.handleDurationStats)
			r.Get("/time-patterns", s.handleTimePatterns)
			r.Get("/token-stats", s.handleTokenStats)
			r.Get("/dashboard", s.handleDashboard)
			r.Get("/export", s.handleExport)
		})
	})

	if s.cfg.Tracing {
		return otelhttp.NewHandler(r, "chatwrap")
	}
	return r
}

// Run serves HTTP and refreshes the artifact snapshot until ctx is canceled.
// Refreshes are driven by the file watcher when enabled, otherwise by a
// ticker.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.refresh(ctx)

	var tick <-chan time.Time
	if s.cfg.Watch {
		w, err := Watch(s.arts.Reader().Dir, s.artifactNames(), defaultDebounce, func() { s.refresh(ctx) })
		if err != nil {
			slog.Warn("artifact watcher unavailable, polling instead", "dir", s.arts.Reader().Dir, "err", err)
		} else {
			defer func() { _ = w.Close() }()
			s.mu.Lock()
			s.watching = true
			s.mu.Unlock()
		}
	}
	if !s.isWatching() {
		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-tick:
			s.refresh(ctx)
		case err := <-errCh:
			return fmt.Errorf("http server: %w", err)
		}
	}
}

func (s *Server) isWatching() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.watching
}

func (s *Server) artifactNames() []string {
	n := s.arts.Names()
	return []string{n.ClusterSummaries, n.DurationStats, n.Conversations, n.TimePatterns, n.TokenStats}
}
