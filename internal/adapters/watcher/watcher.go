// Package watcher reloads persisted values changed by other processes.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.Watcher = (*Watcher)(nil)
	_ ports.Watcher = NoopWatcher{}
)

// FileLocator maps storage keys to files.
type FileLocator interface {
	Dir() string
	Path(key string) string
}

// Watcher watches the storage directory with fsnotify and calls the
// handler of a key when its file is written, created or replaced.
type Watcher struct {
	files     FileLocator
	logger    ports.Logger
	debouncer *Debouncer

	mu        sync.Mutex
	fsWatcher *fsnotify.Watcher
	handlers  map[string]func()
	closed    bool
}

// NewWatcher creates a watcher for the files of files. Events are coalesced over window.
func NewWatcher(files FileLocator, logger ports.Logger, window time.Duration) *Watcher {
	w := &Watcher{
		files:    files,
		logger:   logger,
		handlers: make(map[string]func()),
	}
	w.debouncer = NewDebouncer(window, w.dispatch)
	return w
}

// Watch registers onChange for key and starts watching on first use.
func (w *Watcher) Watch(ctx context.Context, key string, onChange func()) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return zerr.Wrap(domain.ErrWatcherStartFailed, "watcher is closed")
	}

	w.handlers[filepath.Base(w.files.Path(key))] = onChange
	if w.fsWatcher != nil {
		return nil
	}

	dir := w.files.Dir()
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrWatcherStartFailed, err.Error()), "dir", dir)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(domain.ErrWatcherStartFailed, err.Error())
	}
	if err := fsWatcher.Add(dir); err != nil {
		_ = fsWatcher.Close()
		return zerr.With(zerr.Wrap(domain.ErrWatcherStartFailed, err.Error()), "dir", dir)
	}
	w.fsWatcher = fsWatcher

	go w.processEvents(ctx, fsWatcher)
	return nil
}

// Close stops watching and drops pending events.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	w.debouncer.Stop()
	if w.fsWatcher == nil {
		return nil
	}
	return w.fsWatcher.Close()
}

func (w *Watcher) processEvents(ctx context.Context, fsWatcher *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			_ = w.Close()
			return
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return
			}
			// Atomic writes surface as a create or rename of the final name.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(event.Name)
			if w.watched(name) {
				w.debouncer.Add(name)
			}
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn("storage watcher: " + err.Error())
			}
		}
	}
}

func (w *Watcher) watched(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.handlers[name]
	return ok
}

func (w *Watcher) dispatch(names []string) {
	w.mu.Lock()
	fns := make([]func(), 0, len(names))
	for _, name := range names {
		if fn, ok := w.handlers[name]; ok {
			fns = append(fns, fn)
		}
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// NoopWatcher is used for backends without change notification.
type NoopWatcher struct{}

// Watch does nothing.
func (NoopWatcher) Watch(context.Context, string, func()) error { return nil }

// Close does nothing.
func (NoopWatcher) Close() error { return nil }
