package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDiffSnapshots(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := Snapshot{
		Conversations: 10,
		Tokens:        1_000,
		Artifacts: []ArtifactState{
			{Name: "a.json", Present: true, Size: 10, ModTime: t0},
			{Name: "b.csv", Present: true, Size: 20, ModTime: t0},
		},
	}
	curr := Snapshot{
		Conversations: 12,
		Tokens:        1_250,
		Artifacts: []ArtifactState{
			{Name: "a.json", Present: true, Size: 10, ModTime: t0},
			{Name: "b.csv", Present: true, Size: 25, ModTime: t0.Add(time.Second)},
		},
	}

	delta := diffSnapshots(prev, curr)
	if delta.Conversations != 2 {
		t.Fatalf("Conversations delta = %d, want 2", delta.Conversations)
	}
	if delta.Tokens != 250 {
		t.Fatalf("Tokens delta = %d, want 250", delta.Tokens)
	}
	if len(delta.Changed) != 1 || delta.Changed[0] != "b.csv" {
		t.Fatalf("Changed = %v, want [b.csv]", delta.Changed)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
	if !diffSnapshots(curr, curr).isZero() {
		t.Fatal("identical snapshots should diff to zero")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{EventsBuffer: 2}, nil)

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestRefreshPublishesOnChangeOnly(t *testing.T) {
	s, dir := newTestServer(t, map[string]string{"conversation.csv": fixtureCSV})
	ctx := context.Background()

	s.refresh(ctx)
	s.refresh(ctx)
	if n := len(s.events); n != 1 || s.events[0].Type != EventSnapshot {
		t.Fatalf("after two idle refreshes events = %+v", s.events)
	}

	extra := fixtureCSV + "u4,Delta,2024-09-01 01:00:00+00:00,2024-09-01 02:00:00+00:00,3600.0,3,5,5\n"
	writeFixture(t, dir, map[string]string{"conversation.csv": extra})
	s.refresh(ctx)

	if len(s.events) != 2 {
		t.Fatalf("events = %d, want 2", len(s.events))
	}
	ev := s.events[1]
	if ev.Type != EventArtifactsChanged || ev.Delta.Conversations != 1 || ev.Delta.Tokens != 10 {
		t.Fatalf("event = %+v", ev)
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	calls := make(chan struct{}, 8)
	w, err := Watch(dir, []string{"conversation.csv"}, 50*time.Millisecond, func() { calls <- struct{}{} })
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer func() { _ = w.Close() }()

	path := filepath.Join(dir, "conversation.csv")
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("uuid\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("onChange not called")
	}
	select {
	case <-calls:
		t.Fatal("burst should collapse into one call")
	case <-time.After(200 * time.Millisecond):
	}
}
