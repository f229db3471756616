// Package watcher runs a handler for every saved watch page dropped into a
// directory.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventHandler processes one new file.
type EventHandler func(ctx context.Context, path string) error

type Watcher struct {
	dir           string
	handler       EventHandler
	logger        *slog.Logger
	watcher       *fsnotify.Watcher
	settle        time.Duration
	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup
}

// New watches dir. settle is how long to wait after a file appears before
// reading it; maxConcurrent <= 0 means one file at a time.
func New(dir string, handler EventHandler, logger *slog.Logger, maxConcurrent int, settle time.Duration) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		dir:           dir,
		handler:       handler,
		logger:        logger,
		watcher:       w,
		settle:        settle,
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
	}, nil
}

// Start blocks until ctx is done, handing each new page file to the
// handler. It waits for running handlers before returning.
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Info("watching for saved pages", "dir", w.dir, "max_concurrent", w.maxConcurrent)

	for {
		select {
		case <-ctx.Done():
			w.wg.Wait()
			w.logger.Info("watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !IsPageFile(event.Name) {
				w.logger.Debug("ignoring file", "path", event.Name)
				continue
			}
			w.logger.Info("new page detected", "path", event.Name)

			// Let the browser finish writing.
			select {
			case <-time.After(w.settle):
			case <-ctx.Done():
				continue
			}

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(path string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()

					if err := w.handler(ctx, path); err != nil {
						w.logger.Error("failed to process page", "path", path, "error", err)
					}
				}(event.Name)
			case <-ctx.Done():
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// Stop closes the underlying watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// IsPageFile reports whether path looks like a saved HTML page.
func IsPageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}
