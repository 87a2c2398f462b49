// Package store loads the taxonomy documents that back the API: one root
// document plus a directory each of component and subcomponent files. Loads
// are tolerant; unreadable files become logged misses, never errors.
package store

import (
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 200 * time.Millisecond

// Watcher evicts cache entries as backing documents change on disk. Events
// are debounced because editors and sync tools emit bursts for one save.
type Watcher struct {
	fw       *fsnotify.Watcher
	cache    *DocumentCache
	log      *slog.Logger
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer

	done chan struct{}
}

// NewWatcher watches the given paths (directories or files) and evicts
// changed documents from cache.
func NewWatcher(cache *DocumentCache, logger *slog.Logger, paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	w := &Watcher{
		fw:       fw,
		cache:    cache,
		log:      logger.With("component", "watcher"),
		debounce: defaultDebounce,
		pending:  make(map[string]struct{}),
		done:     make(chan struct{}),
	}

	for _, path := range paths {
		if err := fw.Add(path); err != nil {
			w.log.Warn("cannot watch path", "path", path, "error", err)
		}
	}

	go w.loop()

	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.mark(event.Name)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "error", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) mark(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[path] = struct{}{}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.flush)
	} else {
		w.timer.Reset(w.debounce)
	}
}

func (w *Watcher) flush() {
	w.mu.Lock()
	paths := w.pending
	w.pending = make(map[string]struct{})
	w.timer = nil
	w.mu.Unlock()

	for path := range paths {
		w.cache.Evict(path)
	}

	w.log.Info("evicted changed documents", "count", len(paths))
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}
