package app

import (
	"context"
	"strings"

	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/state"
	"go.trai.ch/zerr"
)

// ParseJobRef accepts "42", "#42" and "#/42".
func ParseJobRef(ref string) (int, error) {
	fragment := ref
	if !strings.HasPrefix(fragment, "#") {
		fragment = "#/" + fragment
	}
	active := domain.ParseFragment(fragment)
	if !active.Valid {
		return 0, zerr.With(zerr.Wrap(domain.ErrInvalidJobID, "invalid job reference"), "ref", ref)
	}
	return active.ID, nil
}

// Show prints the details of the job item referenced by ref. The item is
// selected by navigating to its fragment, as a link would.
func (a *App) Show(ctx context.Context, opts Options, ref string) error {
	id, err := ParseJobRef(ref)
	if err != nil {
		return err
	}

	return a.run(ctx, opts, func(s *Session) error {
		s.Init(ctx)
		active := s.Scopes.ActiveID
		s.History.Navigate(domain.FragmentFor(id))

		st, err := waitFor(ctx, active.Subscribe, active.State, func(st state.ActiveItem) bool {
			return st.ID.Valid && st.ID.ID == id && !st.IsLoading
		})
		if err != nil {
			return err
		}
		if st.Err != nil {
			return zerr.With(zerr.Wrap(st.Err, "cannot show job item"), "id", id)
		}
		if st.JobItem == nil {
			return zerr.With(zerr.Wrap(domain.ErrJobAPIRequestFailed, "job item unavailable"), "id", id)
		}

		a.renderer().RenderJobItem(*st.JobItem, s.Scopes.Bookmarks.Has(id))
		return nil
	})
}
