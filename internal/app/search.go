package app

import (
	"context"
	"strings"

	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/state"
	"go.trai.ch/zerr"
)

// SearchOptions configures Search.
type SearchOptions struct {
	Options
	Text   string
	SortBy domain.SortBy
	Page   int
}

// Search prints one page of the job items matching opts.Text.
func (a *App) Search(ctx context.Context, opts SearchOptions) error {
	text := strings.TrimSpace(opts.Text)
	if text == "" {
		return domain.ErrMissingSearchText
	}

	return a.run(ctx, opts.Options, func(s *Session) error {
		s.Init(ctx)
		items := s.Scopes.JobItems
		sortBy := opts.SortBy
		if sortBy == "" {
			sortBy = domain.SortRelevant
		}
		items.SetSort(sortBy)

		s.Scopes.SearchText.OnInputChange(text)
		s.Scopes.SearchText.Flush()

		st, err := waitFor(ctx, items.Subscribe, items.State, func(st state.JobItemsState) bool {
			return st.SearchText == text && !st.IsLoading
		})
		if err != nil {
			return err
		}
		if st.Err != nil {
			return zerr.With(zerr.Wrap(st.Err, "search failed"), "search", text)
		}

		if opts.Page > 1 {
			items.SetPage(opts.Page)
			st = items.State()
		}

		a.renderer().RenderPage(text, st.SortBy, st.Page, s.Scopes.Bookmarks.Has)
		return nil
	})
}
