package state

import (
	"context"
	"slices"
	"sync"

	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports"
	"go.trai.ch/jobsync/internal/engine/observe"
	"go.trai.ch/jobsync/internal/engine/persist"
	"go.trai.ch/jobsync/internal/engine/query"
)

// BookmarksState is the bookmarked ids and the job items resolved for them.
type BookmarksState struct {
	IDs []int
	// Items holds the fetched items in bookmark order. Ids whose item has not
	// been fetched successfully are left out.
	Items []domain.JobItemExpanded
	// IsLoading is true while any bookmarked item is loading for the first time.
	IsLoading bool
}

// Bookmarks holds the persisted bookmark set and keeps its items fetched.
type Bookmarks struct {
	set   *persist.Set
	items *query.Cache[domain.JobItemExpanded]
	fetch func(domain.QueryKey) query.Fetcher[domain.JobItemExpanded]

	mu       sync.Mutex
	ctx      context.Context
	state    BookmarksState
	itemSubs map[int]func()
	unsubSet func()

	emitMu  sync.Mutex
	changes observe.Subject[BookmarksState]
}

// NewBookmarks returns the bookmarks scope over set.
func NewBookmarks(set *persist.Set, caches *Caches, api ports.JobAPI) (*Bookmarks, error) {
	switch {
	case set == nil:
		return nil, missing("bookmarks", "persisted set")
	case caches == nil:
		return nil, missing("bookmarks", "caches")
	case api == nil:
		return nil, missing("bookmarks", "job API")
	}
	return &Bookmarks{
		set:      set,
		items:    caches.Items,
		fetch:    ItemFetcher(api),
		itemSubs: make(map[int]func()),
		state:    BookmarksState{IDs: set.IDs()},
	}, nil
}

// Init fetches the item of every bookmarked id and follows later changes to the set.
func (s *Bookmarks) Init(ctx context.Context) {
	s.mu.Lock()
	if s.unsubSet != nil {
		s.mu.Unlock()
		return
	}
	s.ctx = ctx
	s.unsubSet = s.set.Subscribe(s.resolve)
	s.mu.Unlock()

	s.resolve(s.set.IDs())
}

// resolve subscribes to the item of each id in ids, drops subscriptions of
// removed ids and fetches every item.
func (s *Bookmarks) resolve(ids []int) {
	s.mu.Lock()
	if s.unsubSet == nil {
		s.mu.Unlock()
		return
	}
	var stale []func()
	for id, unsubscribe := range s.itemSubs {
		if !slices.Contains(ids, id) {
			stale = append(stale, unsubscribe)
			delete(s.itemSubs, id)
		}
	}
	for _, id := range ids {
		if _, ok := s.itemSubs[id]; ok {
			continue
		}
		s.itemSubs[id] = s.items.Subscribe(domain.JobItemKey(id), func(domain.QueryResult[domain.JobItemExpanded]) {
			s.emit()
		})
	}
	ctx := s.ctx
	s.mu.Unlock()

	for _, unsubscribe := range stale {
		unsubscribe()
	}

	keys := make([]domain.QueryKey, len(ids))
	for i, id := range ids {
		keys[i] = domain.JobItemKey(id)
	}
	s.items.FetchMany(ctx, keys, s.fetch)
	s.emit()
}

func (s *Bookmarks) emit() {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	ids := s.set.IDs()
	next := BookmarksState{IDs: ids, Items: make([]domain.JobItemExpanded, 0, len(ids))}
	for _, id := range ids {
		r := s.items.Get(domain.JobItemKey(id))
		if r.IsLoading {
			next.IsLoading = true
		}
		if !r.LastFetchedAt.IsZero() {
			next.Items = append(next.Items, r.Data)
		}
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	s.changes.Publish(next)
}

// State returns the bookmarked ids and their resolved items.
func (s *Bookmarks) State() BookmarksState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IDs returns the bookmarked ids in bookmark order.
func (s *Bookmarks) IDs() []int {
	return s.set.IDs()
}

// Has reports whether id is bookmarked.
func (s *Bookmarks) Has(id int) bool {
	return s.set.Has(id)
}

// Add bookmarks id. Ids that are not positive are rejected.
func (s *Bookmarks) Add(ctx context.Context, id int) error {
	if err := checkID(id); err != nil {
		return err
	}
	return s.set.Add(ctx, id)
}

// Remove removes the bookmark of id.
func (s *Bookmarks) Remove(ctx context.Context, id int) error {
	return s.set.Remove(ctx, id)
}

// Toggle flips the bookmark of id and reports whether id is bookmarked afterwards.
func (s *Bookmarks) Toggle(ctx context.Context, id int) (bool, error) {
	if err := checkID(id); err != nil {
		return false, err
	}
	return s.set.Toggle(ctx, id)
}

// Reload picks up bookmarks written by another process.
func (s *Bookmarks) Reload(ctx context.Context) error {
	return s.set.Reload(ctx)
}

// Subscribe registers fn for every change of the bookmarks state.
func (s *Bookmarks) Subscribe(fn func(BookmarksState)) (unsubscribe func()) {
	return s.changes.Subscribe(fn)
}

// Dispose stops following the set and its items.
func (s *Bookmarks) Dispose() {
	s.mu.Lock()
	unsubs := make([]func(), 0, len(s.itemSubs)+1)
	if s.unsubSet != nil {
		unsubs = append(unsubs, s.unsubSet)
	}
	for id, unsubscribe := range s.itemSubs {
		unsubs = append(unsubs, unsubscribe)
		delete(s.itemSubs, id)
	}
	s.unsubSet = nil
	s.mu.Unlock()

	for _, unsubscribe := range unsubs {
		unsubscribe()
	}
}
