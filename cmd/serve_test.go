package cmd

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestFilterDetachArg(t *testing.T) {
	got := filterDetachArg([]string{"serve", "--detach", "--addr", ":3000", "--detach=true"})
	want := []string{"serve", "--addr", ":3000"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("filterDetachArg = %v, want %v", got, want)
	}
}

func TestPIDFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatwrap.pid")
	if err := writePID(path, 4242); err != nil {
		t.Fatal(err)
	}
	pid, err := readPID(path)
	if err != nil || pid != 4242 {
		t.Fatalf("readPID = %d, %v", pid, err)
	}

	if err := os.WriteFile(path, []byte("nope\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := readPID(path); err == nil {
		t.Error("expected error for malformed pid file")
	}
}

func TestEnsureServerNotRunningClearsStalePID(t *testing.T) {
	dir := t.TempDir()
	pidFile := filepath.Join(dir, "chatwrap.pid")

	if err := ensureServerNotRunning(pidFile); err != nil {
		t.Fatalf("missing pid file: %v", err)
	}

	if err := writePID(pidFile, os.Getpid()); err != nil {
		t.Fatal(err)
	}
	if err := ensureServerNotRunning(pidFile); err == nil {
		t.Error("live pid should be reported as running")
	}
}

func TestStateRoundTrip(t *testing.T) {
	path := statePath(filepath.Join(t.TempDir(), "chatwrap.pid"))
	want := serverRuntimeState{PID: 7, Addr: "127.0.0.1:3000", StartedAt: time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC), OutDir: "out"}
	if err := writeState(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := readState(path)
	if err != nil {
		t.Fatal(err)
	}
	if !got.StartedAt.Equal(want.StartedAt) || got.Addr != want.Addr || got.PID != want.PID || got.OutDir != want.OutDir {
		t.Errorf("readState = %+v, want %+v", got, want)
	}
}
