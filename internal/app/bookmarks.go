package app

import (
	"context"

	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/state"
	"go.trai.ch/zerr"
)

// ListBookmarks prints the bookmarked ids. With details it resolves every
// bookmarked item first; unavailable items are listed by id.
func (a *App) ListBookmarks(ctx context.Context, opts Options, details bool) error {
	return a.run(ctx, opts, func(s *Session) error {
		bookmarks := s.Scopes.Bookmarks
		if !details {
			a.renderer().RenderBookmarks(bookmarks.IDs(), nil)
			return nil
		}

		s.Init(ctx)
		st, err := waitFor(ctx, bookmarks.Subscribe, bookmarks.State, func(st state.BookmarksState) bool {
			return !st.IsLoading && settled(s, st.IDs)
		})
		if err != nil {
			return err
		}
		a.renderer().RenderBookmarks(st.IDs, st.Items)
		return nil
	})
}

// settled reports whether no item of ids has a request in flight.
func settled(s *Session, ids []int) bool {
	for _, id := range ids {
		if s.Caches.Items.Get(domain.JobItemKey(id)).IsFetching {
			return false
		}
	}
	return true
}

// AddBookmark bookmarks the job item referenced by ref.
func (a *App) AddBookmark(ctx context.Context, opts Options, ref string) error {
	id, err := ParseJobRef(ref)
	if err != nil {
		return err
	}
	return a.run(ctx, opts, func(s *Session) error {
		if err := s.Scopes.Bookmarks.Add(ctx, id); err != nil {
			return zerr.With(zerr.Wrap(err, "cannot add bookmark"), "id", id)
		}
		a.renderer().RenderToggle(id, true)
		return nil
	})
}

// RemoveBookmark removes the bookmark of the job item referenced by ref.
func (a *App) RemoveBookmark(ctx context.Context, opts Options, ref string) error {
	id, err := ParseJobRef(ref)
	if err != nil {
		return err
	}
	return a.run(ctx, opts, func(s *Session) error {
		if err := s.Scopes.Bookmarks.Remove(ctx, id); err != nil {
			return zerr.With(zerr.Wrap(err, "cannot remove bookmark"), "id", id)
		}
		a.renderer().RenderToggle(id, false)
		return nil
	})
}

// ToggleBookmark flips the bookmark of the job item referenced by ref.
func (a *App) ToggleBookmark(ctx context.Context, opts Options, ref string) error {
	id, err := ParseJobRef(ref)
	if err != nil {
		return err
	}
	return a.run(ctx, opts, func(s *Session) error {
		bookmarked, err := s.Scopes.Bookmarks.Toggle(ctx, id)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "cannot toggle bookmark"), "id", id)
		}
		a.renderer().RenderToggle(id, bookmarked)
		return nil
	})
}
