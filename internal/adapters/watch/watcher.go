// Package watch reports changes to the wiki script sources while the dev
// server runs.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Stats is a snapshot of what the watcher has seen.
type Stats struct {
	Dir        string    `json:"dir"`
	Changes    int       `json:"changes"`
	LastPath   string    `json:"lastPath,omitempty"`
	LastOp     string    `json:"lastOp,omitempty"`
	LastChange time.Time `json:"lastChange,omitempty"`
}

// Watcher records create/write/remove/rename events under a directory tree.
// Every event counts; nothing is coalesced.
type Watcher struct {
	dir    string
	fsw    *fsnotify.Watcher
	logger *slog.Logger

	mu    sync.RWMutex
	stats Stats

	done chan struct{}
}

func New(dir string, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		dir:    dir,
		fsw:    fsw,
		logger: logger,
		stats:  Stats{Dir: dir},
		done:   make(chan struct{}),
	}
	if err := w.addTree(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := w.fsw.Add(path); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
		}
		return nil
	})
}

// Run processes events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.done)
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "dir", w.dir, "error", err)
		}
	}
}

// Done is closed once Run has returned.
func (w *Watcher) Done() <-chan struct{} { return w.done }

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				w.logger.Warn("watch new dir", "path", ev.Name, "error", err)
			}
		}
	}

	w.mu.Lock()
	w.stats.Changes++
	w.stats.LastPath = ev.Name
	w.stats.LastOp = ev.Op.String()
	w.stats.LastChange = time.Now()
	w.mu.Unlock()

	rel, err := filepath.Rel(w.dir, ev.Name)
	if err != nil {
		rel = ev.Name
	}
	w.logger.Info("wiki file changed", "path", rel, "op", ev.Op.String())
}

func (w *Watcher) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}
