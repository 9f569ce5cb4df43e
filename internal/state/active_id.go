package state

import (
	"context"
	"sync"

	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports"
	"go.trai.ch/jobsync/internal/engine/observe"
	"go.trai.ch/jobsync/internal/engine/query"
	"go.trai.ch/jobsync/internal/engine/selection"
)

// ActiveItem is the active id together with its fetched job item.
type ActiveItem struct {
	ID domain.ActiveID
	// JobItem is nil until the item has been fetched, and whenever no id is active.
	JobItem   *domain.JobItemExpanded
	IsLoading bool
	Err       error
}

// ActiveID follows the navigation fragment and keeps the active job item fetched.
type ActiveID struct {
	tracker *selection.Tracker
	items   *query.Cache[domain.JobItemExpanded]
	fetch   func(domain.QueryKey) query.Fetcher[domain.JobItemExpanded]

	mu           sync.Mutex
	ctx          context.Context
	selected     domain.ActiveID
	state        ActiveItem
	unsubTracker func()
	unsubItem    func()

	// emitMu orders notifications so a subscriber never sees an older state
	// after a newer one.
	emitMu  sync.Mutex
	changes observe.Subject[ActiveItem]
}

// NewActiveID returns the active id scope. Nothing is tracked until Init.
func NewActiveID(tracker *selection.Tracker, caches *Caches, api ports.JobAPI) (*ActiveID, error) {
	switch {
	case tracker == nil:
		return nil, missing("active id", "selection tracker")
	case caches == nil:
		return nil, missing("active id", "caches")
	case api == nil:
		return nil, missing("active id", "job API")
	}
	return &ActiveID{
		tracker: tracker,
		items:   caches.Items,
		fetch:   ItemFetcher(api),
	}, nil
}

// Init reads the active id once and follows every later navigation change.
// Requests started for the active item use ctx without its cancellation.
func (s *ActiveID) Init(ctx context.Context) {
	s.mu.Lock()
	if s.unsubTracker != nil {
		s.mu.Unlock()
		return
	}
	s.ctx = ctx
	s.tracker.Init()
	s.unsubTracker = s.tracker.Subscribe(s.sel)
	s.mu.Unlock()

	s.sel(s.tracker.Active())
}

// sel makes id the active id: it moves the item subscription and fetches the item.
func (s *ActiveID) sel(id domain.ActiveID) {
	key := domain.JobItemKey(id.ID)

	s.mu.Lock()
	if s.unsubTracker == nil {
		s.mu.Unlock()
		return
	}
	s.selected = id
	prev := s.unsubItem
	s.unsubItem = s.items.Subscribe(key, func(domain.QueryResult[domain.JobItemExpanded]) {
		s.emit(id)
	})
	ctx := s.ctx
	s.mu.Unlock()

	if prev != nil {
		prev()
	}

	if id.Valid {
		s.items.Fetch(ctx, key, s.fetch(key))
	}
	s.emit(id)
}

// emit publishes the cached state of id if id is still the active id.
func (s *ActiveID) emit(id domain.ActiveID) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	next := ActiveItem{ID: id}
	if id.Valid {
		r := s.items.Get(domain.JobItemKey(id.ID))
		if !r.LastFetchedAt.IsZero() {
			item := r.Data
			next.JobItem = &item
		}
		next.IsLoading = r.IsLoading
		next.Err = r.Err
	}

	s.mu.Lock()
	if s.selected != id {
		s.mu.Unlock()
		return
	}
	s.state = next
	s.mu.Unlock()

	s.changes.Publish(next)
}

// Refresh refetches the active job item. It does nothing when no id is active.
func (s *ActiveID) Refresh() {
	s.mu.Lock()
	if s.unsubTracker == nil || !s.selected.Valid {
		s.mu.Unlock()
		return
	}
	key := domain.JobItemKey(s.selected.ID)
	ctx := s.ctx
	s.mu.Unlock()

	s.items.Refetch(ctx, key, s.fetch(key))
}

// ID returns the active id.
func (s *ActiveID) ID() domain.ActiveID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// State returns the active id and its job item.
func (s *ActiveID) State() ActiveItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn for every change of the active item.
func (s *ActiveID) Subscribe(fn func(ActiveItem)) (unsubscribe func()) {
	return s.changes.Subscribe(fn)
}

// Dispose stops following navigation and item updates.
func (s *ActiveID) Dispose() {
	s.mu.Lock()
	unsubTracker, unsubItem := s.unsubTracker, s.unsubItem
	s.unsubTracker, s.unsubItem = nil, nil
	s.mu.Unlock()

	if unsubTracker != nil {
		unsubTracker()
	}
	if unsubItem != nil {
		unsubItem()
	}
	s.tracker.Dispose()
}
