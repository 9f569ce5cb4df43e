package app

import (
	"context"
	"errors"
	"io"

	"go.trai.ch/jobsync/internal/adapters/navigation" //nolint:depguard // Wired in app layer
	"go.trai.ch/jobsync/internal/adapters/notify"     //nolint:depguard // Wired in app layer
	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports"
	"go.trai.ch/jobsync/internal/state"
	"go.trai.ch/zerr"
)

// Session is the state of one command invocation: its configuration, the
// shared caches and the four scopes built on them.
type Session struct {
	Config   *domain.Config
	Scopes   *state.Scopes
	Caches   *state.Caches
	API      ports.JobAPI
	Store    ports.KeyValueStore
	Watcher  ports.Watcher
	Reporter *notify.Reporter
	History  *navigation.History
	Logger   ports.Logger
}

// Init starts every scope. Requests made by the scopes use ctx without its cancellation.
func (s *Session) Init(ctx context.Context) {
	s.Scopes.Init(ctx)
}

// WatchBookmarks reloads the bookmarks whenever another process changes them.
// A failed reload is passed to onError; a nil onError logs it as a warning.
func (s *Session) WatchBookmarks(ctx context.Context, onError func(error)) error {
	if onError == nil {
		onError = s.warn
	}
	return s.Watcher.Watch(ctx, s.Config.Storage.BookmarksKey, func() {
		if err := s.Scopes.Bookmarks.Reload(ctx); err != nil {
			onError(zerr.Wrap(err, "failed to reload bookmarks"))
		}
	})
}

func (s *Session) warn(err error) {
	if s.Logger != nil {
		s.Logger.Warn(err.Error())
	}
}

// Close disposes the scopes and releases the watcher and the store.
func (s *Session) Close() error {
	s.Scopes.Dispose()

	var errs []error
	if s.Watcher != nil {
		errs = append(errs, s.Watcher.Close())
	}
	if closer, ok := s.Store.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}
