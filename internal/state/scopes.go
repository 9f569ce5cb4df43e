package state

import "context"

// Scopes is the composition root of the four state scopes.
type Scopes struct {
	SearchText *SearchText
	ActiveID   *ActiveID
	Bookmarks  *Bookmarks
	JobItems   *JobItems
}

// NewScopes bundles the scopes. Every scope is required.
func NewScopes(search *SearchText, active *ActiveID, bookmarks *Bookmarks, items *JobItems) (*Scopes, error) {
	switch {
	case search == nil:
		return nil, missing("scopes", "search text")
	case active == nil:
		return nil, missing("scopes", "active id")
	case bookmarks == nil:
		return nil, missing("scopes", "bookmarks")
	case items == nil:
		return nil, missing("scopes", "job items")
	}
	return &Scopes{
		SearchText: search,
		ActiveID:   active,
		Bookmarks:  bookmarks,
		JobItems:   items,
	}, nil
}

// Init starts every scope that reacts to input.
func (s *Scopes) Init(ctx context.Context) {
	s.ActiveID.Init(ctx)
	s.Bookmarks.Init(ctx)
	s.JobItems.Init(ctx)
}

// Dispose tears the scopes down in reverse dependency order.
func (s *Scopes) Dispose() {
	s.JobItems.Dispose()
	s.SearchText.Dispose()
	s.Bookmarks.Dispose()
	s.ActiveID.Dispose()
}
