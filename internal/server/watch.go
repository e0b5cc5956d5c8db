package server

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher calls onChange after any of the named files in dir is written,
// created, removed or renamed. Bursts within the debounce window collapse
// into one call.
type Watcher struct {
	watcher  *fsnotify.Watcher
	names    map[string]bool
	debounce time.Duration
	onChange func()

	mu    sync.Mutex
	timer *time.Timer
	stop  chan struct{}
	done  chan struct{}
}

// Watch starts watching dir. The directory itself is watched so files that
// appear after startup are noticed.
func Watch(dir string, names []string, debounce time.Duration, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		if closeErr := fw.Close(); closeErr != nil {
			slog.Error("failed to close watcher", "err", closeErr)
		}
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		names:    make(map[string]bool, len(names)),
		debounce: debounce,
		onChange: onChange,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, n := range names {
		w.names[filepath.Base(n)] = true
	}

	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.names[filepath.Base(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.schedule()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("artifact watcher error", "err", err)

		case <-w.stop:
			return
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.onChange)
}

// Close stops the watcher and any pending callback.
func (w *Watcher) Close() error {
	close(w.stop)
	<-w.done

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	return w.watcher.Close()
}
