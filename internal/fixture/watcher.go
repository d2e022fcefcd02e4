package fixture

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchEvent describes a change to a fixture document.
type WatchEvent struct {
	Fixture Fixture
}

// Watcher monitors a fixture directory for file changes.
type Watcher struct {
	root   string
	logger *slog.Logger
	Ready  chan struct{}

	newWatcher func() (*fsnotify.Watcher, error)
}

// NewWatcher creates a new Watcher for the given fixture directory.
func NewWatcher(root string, logger *slog.Logger) *Watcher {
	return &Watcher{
		root:       root,
		logger:     logger.With("component", "watcher"),
		Ready:      make(chan struct{}),
		newWatcher: fsnotify.NewWatcher,
	}
}

// Watch starts monitoring the directory for changes. It calls the provided callback
// whenever a fixture is written or created. It blocks until the context is cancelled.
func (w *Watcher) Watch(ctx context.Context, callback func(WatchEvent)) error {
	watcher, err := w.newWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := w.addRecursive(watcher, w.root); err != nil {
		return err
	}

	w.logger.Info("Watching for changes", "root", w.root)
	if w.Ready != nil {
		close(w.Ready)
	}

	const debounceDuration = 100 * time.Millisecond
	var (
		mu      sync.Mutex
		timer   *time.Timer
		pending WatchEvent
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-watcher.Errors:
			w.logger.Error("Watcher error", "error", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			ev := w.handleEvent(watcher, event)
			if ev == nil {
				continue
			}
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			pending = *ev
			timer = time.AfterFunc(debounceDuration, func() {
				mu.Lock()
				e := pending
				mu.Unlock()
				callback(e)
			})
			mu.Unlock()
		}
	}
}

// handleEvent processes a single fsnotify event. If it's a new directory, it adds it to the watcher.
// If it's a fixture change, it returns a pointer to a WatchEvent.
func (w *Watcher) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) *WatchEvent {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return nil
	}

	if event.Has(fsnotify.Create) {
		info, err := os.Stat(event.Name)
		if err == nil && info.IsDir() {
			if err := w.addRecursive(watcher, event.Name); err != nil {
				w.logger.Error("Failed to watch new directory", "path", event.Name, "error", err)
			}
			return nil
		}
	}

	kind, ok := KindFromPath(event.Name)
	if !ok {
		return nil
	}
	return &WatchEvent{Fixture: Fixture{Path: event.Name, Kind: kind}}
}

// addRecursive adds the given path and all its subdirectories to the watcher.
func (w *Watcher) addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(filepath.Base(path), ".") && path != root {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}
