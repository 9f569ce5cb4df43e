package state

import (
	"context"
	"sync"

	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports"
	"go.trai.ch/jobsync/internal/engine/observe"
	"go.trai.ch/jobsync/internal/engine/query"
)

// JobItemsState is the search result list for the debounced search text.
type JobItemsState struct {
	SearchText string
	// Items holds every result, sorted.
	Items     []domain.JobItem
	Page      domain.Page
	SortBy    domain.SortBy
	IsLoading bool
	Err       error
}

// JobItems fetches the result list whenever the debounced search text
// changes and exposes it sorted and paginated.
type JobItems struct {
	search   *SearchText
	lists    *query.Cache[[]domain.JobItem]
	fetch    func(domain.QueryKey) query.Fetcher[[]domain.JobItem]
	pageSize int

	mu          sync.Mutex
	ctx         context.Context
	text        string
	sortBy      domain.SortBy
	page        int
	state       JobItemsState
	inited      bool
	unsubSearch func()
	unsubList   func()

	emitMu  sync.Mutex
	changes observe.Subject[JobItemsState]
}

// NewJobItems returns the job item list scope driven by search.
// A non-positive pageSize selects domain.DefaultPageSize.
func NewJobItems(search *SearchText, caches *Caches, api ports.JobAPI, pageSize int) (*JobItems, error) {
	switch {
	case search == nil:
		return nil, missing("job items", "search text")
	case caches == nil:
		return nil, missing("job items", "caches")
	case api == nil:
		return nil, missing("job items", "job API")
	}
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	s := &JobItems{
		search:   search,
		lists:    caches.Lists,
		fetch:    ListFetcher(api),
		pageSize: pageSize,
		sortBy:   domain.SortRelevant,
		page:     1,
	}
	s.state = JobItemsState{SortBy: s.sortBy, Page: domain.Paginate(nil, 1, pageSize)}
	return s, nil
}

// Init fetches the list for the current debounced text and follows later changes.
func (s *JobItems) Init(ctx context.Context) {
	s.mu.Lock()
	if s.inited {
		s.mu.Unlock()
		return
	}
	s.inited = true
	s.ctx = ctx
	s.unsubSearch = s.search.SubscribeDebounced(s.onSearch)
	s.mu.Unlock()

	s.onSearch(s.search.State().Debounced)
}

// onSearch switches the list to text and resets to the first page.
func (s *JobItems) onSearch(text string) {
	key := domain.JobItemsKey(text)

	s.mu.Lock()
	if !s.inited {
		s.mu.Unlock()
		return
	}
	s.text = text
	s.page = 1
	prev := s.unsubList
	s.unsubList = s.lists.Subscribe(key, func(domain.QueryResult[[]domain.JobItem]) {
		s.emit()
	})
	ctx := s.ctx
	s.mu.Unlock()

	if prev != nil {
		prev()
	}

	// A blank text is a disabled key: no request, an empty list.
	s.lists.Fetch(ctx, key, s.fetch(key))
	s.emit()
}

func (s *JobItems) emit() {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	text, sortBy, page := s.text, s.sortBy, s.page
	s.mu.Unlock()

	r := s.lists.Get(domain.JobItemsKey(text))
	items := domain.SortJobItems(r.Data, sortBy)
	next := JobItemsState{
		SearchText: text,
		Items:      items,
		Page:       domain.Paginate(items, page, s.pageSize),
		SortBy:     sortBy,
		IsLoading:  r.IsLoading,
		Err:        r.Err,
	}

	s.mu.Lock()
	if s.text != text || s.sortBy != sortBy || s.page != page {
		// A newer change will emit its own state.
		s.mu.Unlock()
		return
	}
	s.page = next.Page.Number
	s.state = next
	s.mu.Unlock()

	s.changes.Publish(next)
}

// SetSort changes the sort order and goes back to the first page.
func (s *JobItems) SetSort(by domain.SortBy) {
	s.mu.Lock()
	if by == s.sortBy {
		s.mu.Unlock()
		return
	}
	s.sortBy = by
	s.page = 1
	s.mu.Unlock()

	s.emit()
}

// SetPage moves to page n, clamped to the available pages.
func (s *JobItems) SetPage(n int) {
	s.mu.Lock()
	s.page = n
	s.mu.Unlock()

	s.emit()
}

// NextPage moves forward one page unless on the last page.
func (s *JobItems) NextPage() {
	s.mu.Lock()
	s.page = s.state.Page.Number + 1
	s.mu.Unlock()

	s.emit()
}

// PreviousPage moves back one page unless on the first page.
func (s *JobItems) PreviousPage() {
	s.mu.Lock()
	s.page = s.state.Page.Number - 1
	s.mu.Unlock()

	s.emit()
}

// Refresh refetches the list for the current search text, fresh or not.
// The previous results stay visible until the new ones arrive.
func (s *JobItems) Refresh() {
	s.mu.Lock()
	if !s.inited {
		s.mu.Unlock()
		return
	}
	key := domain.JobItemsKey(s.text)
	ctx := s.ctx
	s.mu.Unlock()

	s.lists.Refetch(ctx, key, s.fetch(key))
}

// State returns the current list state.
func (s *JobItems) State() JobItemsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn for every change of the list state.
func (s *JobItems) Subscribe(fn func(JobItemsState)) (unsubscribe func()) {
	return s.changes.Subscribe(fn)
}

// Dispose stops following the search text and the list.
func (s *JobItems) Dispose() {
	s.mu.Lock()
	unsubSearch, unsubList := s.unsubSearch, s.unsubList
	s.unsubSearch, s.unsubList = nil, nil
	s.inited = false
	s.mu.Unlock()

	if unsubSearch != nil {
		unsubSearch()
	}
	if unsubList != nil {
		unsubList()
	}
}
