package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/theirongolddev/chatwrap/internal/source"
)

// ArtifactState is one artifact file as last observed.
type ArtifactState struct {
	Name    string    `json:"name"`
	Present bool      `json:"present"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Snapshot is a compact view of the output directory for status and event
// payloads.
type Snapshot struct {
	At            time.Time       `json:"at"`
	Artifacts     []ArtifactState `json:"artifacts"`
	Conversations int             `json:"conversations"`
	Tokens        int64           `json:"tokens"`
}

// Delta captures what changed between two refreshes.
type Delta struct {
	Conversations int      `json:"conversations"`
	Tokens        int64    `json:"tokens"`
	Changed       []string `json:"changed,omitempty"`
}

func (d Delta) isZero() bool {
	return d.Conversations == 0 &&
		d.Tokens == 0 &&
		len(d.Changed) == 0
}

// Event types.
const (
	EventSnapshot         = "snapshot"
	EventArtifactsChanged = "artifacts_changed"
)

// Event is emitted whenever the artifact snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastRefreshAt   time.Time `json:"last_refresh_at"`
	RefreshCount    int64     `json:"refresh_count"`
	OutDir          string    `json:"out_dir"`
	Watching        bool      `json:"watching"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

func artifactStates(files []source.FileInfo) []ArtifactState {
	out := make([]ArtifactState, len(files))
	for i, f := range files {
		out[i] = ArtifactState{
			Name:    f.Name,
			Present: !f.ModTime.IsZero(),
			Size:    f.Size,
			ModTime: f.ModTime,
		}
	}
	return out
}

// refresh re-reads the artifact inventory and conversation totals and
// publishes an event when anything moved.
func (s *Server) refresh(ctx context.Context) {
	now := s.now()
	snap := Snapshot{At: now, Artifacts: artifactStates(s.arts.Inventory())}

	var errMsg string
	if records, err := s.arts.Conversations(ctx); err != nil {
		errMsg = err.Error()
		slog.Warn("refresh: conversations unavailable", "err", err)
	} else {
		snap.Conversations = len(records)
	}
	if tokens, err := s.arts.TokenStats(ctx); err != nil {
		if errMsg == "" {
			errMsg = err.Error()
		}
		slog.Warn("refresh: token stats unavailable", "err", err)
	} else {
		snap.Tokens = tokens.TotalTokens
	}

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastRefresh = now
	s.refreshCount++
	s.lastError = errMsg

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      EventSnapshot,
			Timestamp: now,
			Snapshot:  snap,
		}
		publish = true
	} else if delta := diffSnapshots(prev, snap); !delta.isZero() {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      EventArtifactsChanged,
			Timestamp: now,
			Snapshot:  snap,
			Delta:     delta,
		}
		publish = true
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	d := Delta{
		Conversations: curr.Conversations - prev.Conversations,
		Tokens:        curr.Tokens - prev.Tokens,
	}

	before := make(map[string]ArtifactState, len(prev.Artifacts))
	for _, a := range prev.Artifacts {
		before[a.Name] = a
	}
	for _, a := range curr.Artifacts {
		p, ok := before[a.Name]
		if !ok || p.Present != a.Present || p.Size != a.Size || !p.ModTime.Equal(a.ModTime) {
			d.Changed = append(d.Changed, a.Name)
		}
	}
	return d
}

func (s *Server) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Server) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastRefreshAt:   s.lastRefresh,
		RefreshCount:    s.refreshCount,
		OutDir:          s.arts.Reader().Dir,
		Watching:        s.watching,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	// Streams outlive the server write timeout.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      EventSnapshot,
		Timestamp: s.now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Server) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Server) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
