package server

import (
	"bytes"
	"encoding/json"
	"mime"
	"net/http"

	"github.com/theirongolddev/chatwrap/internal/dashboard"
	"github.com/theirongolddev/chatwrap/internal/export"
	"github.com/theirongolddev/chatwrap/internal/logger"
	"github.com/theirongolddev/chatwrap/internal/theme"
	"github.com/theirongolddev/chatwrap/internal/web"
)

// fail logs the cause and answers with a fixed message. Callers never see
// whether the artifact was missing or malformed.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, artifact string, err error, msg string) {
	logger.Ctx(r.Context()).Error("artifact request failed", "artifact", artifact, "err", err)
	respondError(w, http.StatusInternalServerError, msg)
}

func (s *Server) handleClusterSummaries(w http.ResponseWriter, r *http.Request) {
	data, err := s.arts.ClusterSummariesJSON(r.Context())
	if err != nil {
		s.fail(w, r, s.arts.Names().ClusterSummaries, err, msgClusterSummaries)
		return
	}
	respondRaw(w, "application/json", data)
}

func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	text, err := s.arts.ConversationsCSV(r.Context())
	if err != nil {
		s.fail(w, r, s.arts.Names().Conversations, err, msgConversation)
		return
	}
	respondRaw(w, "text/csv", []byte(text))
}

func (s *Server) handleDurationStats(w http.ResponseWriter, r *http.Request) {
	data, err := s.arts.DurationStatsJSON(r.Context())
	if err != nil {
		s.fail(w, r, s.arts.Names().DurationStats, err, msgDurationStats)
		return
	}
	respondRaw(w, "application/json", data)
}

func (s *Server) handleTimePatterns(w http.ResponseWriter, r *http.Request) {
	patterns, err := s.arts.TimePatterns(r.Context())
	if err != nil {
		s.fail(w, r, s.arts.Names().TimePatterns, err, msgTimePatterns)
		return
	}
	respondJSON(w, http.StatusOK, patterns)
}

func (s *Server) handleTokenStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.arts.TokenStats(r.Context())
	if err != nil {
		s.fail(w, r, s.arts.Names().TokenStats, err, msgTokenStats)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) buildView(r *http.Request) dashboard.View {
	return dashboard.Build(r.Context(), s.arts, dashboard.Options{
		Loc:  s.arts.Location(),
		Year: s.cfg.Year,
		Now:  s.now,
	})
}

// themeFor resolves ?theme=, falling back to the configured web theme.
func (s *Server) themeFor(r *http.Request) theme.Theme {
	if t, ok := theme.Lookup(r.URL.Query().Get("theme")); ok {
		return t
	}
	if t, ok := theme.Lookup(s.cfg.Theme); ok {
		return t
	}
	return theme.Dawn
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.buildView(r))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = export.FormatPNG
	}
	if format != export.FormatPNG && format != export.FormatHTML {
		respondError(w, http.StatusBadRequest, "Unsupported export format")
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, s.buildView(r), s.themeFor(r), s.arts.Location()); err != nil {
		logger.Ctx(r.Context()).Error("export failed", "format", format, "err", err)
		respondError(w, http.StatusInternalServerError, msgExport)
		return
	}

	name := export.Filename(s.now(), s.cfg.ExportLoc, format)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	respondRaw(w, export.ContentType(format), buf.Bytes())
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	page := web.Page{View: s.buildView(r), Theme: s.themeFor(r), Loc: s.arts.Location()}
	if err := web.Render(&buf, page); err != nil {
		logger.Ctx(r.Context()).Error("page render failed", "err", err)
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}
	respondRaw(w, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Server) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}
