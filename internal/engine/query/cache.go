// Package query implements the fetch, cache and deduplication engine behind every remote read.
package query

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports"
	"go.trai.ch/jobsync/internal/engine/observe"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Fetcher performs the network request for one key.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Cache holds one entry per query key. At most one request per key is in
// flight at any time, no matter how many callers or subscribers ask for it.
//
// Entries are created on first access, refetched only when accessed after the
// stale time has passed, and never evicted. A failed request is recorded once
// on its entry and reported once; it is retried only when the key is fetched
// again.
type Cache[T any] struct {
	reporter  ports.ErrorReporter
	staleTime time.Duration

	mu      sync.Mutex
	entries map[domain.QueryKey]*entry[T]
	subs    map[domain.QueryKey]*notifier[T]
}

// notifier delivers the state of one key, one goroutine at a time. A change
// arriving during a delivery marks it dirty and the delivering goroutine sends
// the latest state again: the last notification a subscriber receives is the
// current state of the entry.
type notifier[T any] struct {
	subject    observe.Subject[domain.QueryResult[T]]
	delivering bool
	dirty      bool
}

type entry[T any] struct {
	data          T
	status        domain.QueryStatus
	err           error
	lastFetchedAt time.Time
	// done is closed when the in-flight request settles. Nil when idle.
	done chan struct{}
}

// NewCache creates an empty cache. Entries older than staleTime are
// refetched on their next access; a non-positive staleTime selects
// domain.DefaultStaleTime.
func NewCache[T any](reporter ports.ErrorReporter, staleTime time.Duration) *Cache[T] {
	if staleTime <= 0 {
		staleTime = domain.DefaultStaleTime
	}
	return &Cache[T]{
		reporter:  reporter,
		staleTime: staleTime,
		entries:   make(map[domain.QueryKey]*entry[T]),
		subs:      make(map[domain.QueryKey]*notifier[T]),
	}
}

// Fetch returns the current state of key without blocking.
//
// If the key has no entry, its entry is stale, or its last request failed,
// exactly one request is started through fetch and the entry is marked
// pending; every subscriber of key receives the result when it settles.
// Fresh and pending entries are returned as they are. Disabled keys never
// issue a request and are reported as not loading.
func (c *Cache[T]) Fetch(ctx context.Context, key domain.QueryKey, fetch Fetcher[T]) domain.QueryResult[T] {
	return c.fetch(ctx, key, fetch, false)
}

// Refetch is Fetch that ignores freshness. A pending request is still shared.
func (c *Cache[T]) Refetch(ctx context.Context, key domain.QueryKey, fetch Fetcher[T]) domain.QueryResult[T] {
	return c.fetch(ctx, key, fetch, true)
}

func (c *Cache[T]) fetch(ctx context.Context, key domain.QueryKey, fetch Fetcher[T], force bool) domain.QueryResult[T] {
	if !key.Enabled() {
		return domain.QueryResult[T]{Key: key}
	}

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry[T]{}
		c.entries[key] = e
	}

	if !c.shouldFetch(e, force) {
		result := e.result(key)
		c.mu.Unlock()
		return result
	}

	done := make(chan struct{})
	e.status = domain.StatusPending
	e.done = done
	result := e.result(key)
	c.mu.Unlock()

	// Subscribers see pending before the request can settle.
	c.publish(key)

	// The request outlives the caller: nobody cancels an in-flight fetch.
	go c.run(context.WithoutCancel(ctx), key, e, done, fetch)

	return result
}

// shouldFetch decides whether e needs a new request. Callers hold c.mu.
func (c *Cache[T]) shouldFetch(e *entry[T], force bool) bool {
	switch e.status {
	case domain.StatusPending:
		return false
	case domain.StatusSuccess:
		return force || time.Since(e.lastFetchedAt) > c.staleTime
	default:
		return true
	}
}

// run performs the request for key and settles its entry.
// It is the only writer of the entry while the entry is pending.
func (c *Cache[T]) run(ctx context.Context, key domain.QueryKey, e *entry[T], done chan struct{}, fetch Fetcher[T]) {
	data, err := safeFetch(ctx, fetch)

	c.mu.Lock()
	if err != nil {
		e.status = domain.StatusError
		e.err = err
	} else {
		e.status = domain.StatusSuccess
		e.data = data
		e.err = nil
		e.lastFetchedAt = time.Now()
	}
	e.done = nil
	close(done)
	c.mu.Unlock()

	if err != nil && c.reporter != nil {
		c.reporter.Report(key, err)
	}
	c.publish(key)
}

// safeFetch keeps a panicking fetcher from taking down the cache.
func safeFetch[T any](ctx context.Context, fetch Fetcher[T]) (data T, err error) {
	defer zerr.Defer(func(p error) {
		err = errors.Join(domain.ErrFetcherPanicked, p)
	})
	return fetch(ctx)
}

// FetchMany applies Fetch independently to every key, in order.
// Keys repeated in the list, or already in flight, share one request.
func (c *Cache[T]) FetchMany(
	ctx context.Context,
	keys []domain.QueryKey,
	fetchFor func(domain.QueryKey) Fetcher[T],
) []domain.QueryResult[T] {
	results := make([]domain.QueryResult[T], len(keys))
	for i, key := range keys {
		results[i] = c.Fetch(ctx, key, fetchFor(key))
	}
	return results
}

// Await fetches key as Fetch does and blocks until its entry settles or ctx is done.
// It returns the entry's data or the error of its last request.
func (c *Cache[T]) Await(ctx context.Context, key domain.QueryKey, fetch Fetcher[T]) (T, error) {
	var zero T
	if !key.Enabled() {
		return zero, zerr.With(zerr.Wrap(domain.ErrQueryDisabled, "cannot await"), "query", key.String())
	}

	c.Fetch(ctx, key, fetch)

	if err := c.wait(ctx, key); err != nil {
		return zero, err
	}

	result := c.Get(key)
	return result.Data, result.Err
}

// AwaitMany fetches every key and blocks until all of them settle.
// A failing key does not stop the others; its error is on its result.
func (c *Cache[T]) AwaitMany(
	ctx context.Context,
	keys []domain.QueryKey,
	fetchFor func(domain.QueryKey) Fetcher[T],
) ([]domain.QueryResult[T], error) {
	c.FetchMany(ctx, keys, fetchFor)

	var g errgroup.Group
	for _, key := range keys {
		if !key.Enabled() {
			continue
		}
		g.Go(func() error {
			return c.wait(ctx, key)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]domain.QueryResult[T], len(keys))
	for i, key := range keys {
		results[i] = c.Get(key)
	}
	return results, nil
}

// wait blocks until key has no request in flight.
func (c *Cache[T]) wait(ctx context.Context, key domain.QueryKey) error {
	c.mu.Lock()
	e, ok := c.entries[key]
	var done chan struct{}
	if ok {
		done = e.done
	}
	c.mu.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return zerr.With(ctx.Err(), "query", key.String())
	}
}

// Get returns the current state of key without fetching.
func (c *Cache[T]) Get(key domain.QueryKey) domain.QueryResult[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot(key)
}

// Subscribe registers fn for every state change of key.
func (c *Cache[T]) Subscribe(key domain.QueryKey, fn func(domain.QueryResult[T])) (unsubscribe func()) {
	c.mu.Lock()
	n, ok := c.subs[key]
	if !ok {
		n = &notifier[T]{}
		c.subs[key] = n
	}
	c.mu.Unlock()

	return n.subject.Subscribe(fn)
}

// publish sends the current state of key to its subscribers.
func (c *Cache[T]) publish(key domain.QueryKey) {
	c.mu.Lock()
	n, ok := c.subs[key]
	if !ok {
		c.mu.Unlock()
		return
	}
	if n.delivering {
		n.dirty = true
		c.mu.Unlock()
		return
	}
	n.delivering = true

	for {
		n.dirty = false
		result := c.snapshot(key)
		c.mu.Unlock()

		n.subject.Publish(result)

		c.mu.Lock()
		if !n.dirty {
			n.delivering = false
			c.mu.Unlock()
			return
		}
	}
}

// snapshot returns the state of key. Callers hold c.mu.
func (c *Cache[T]) snapshot(key domain.QueryKey) domain.QueryResult[T] {
	e, ok := c.entries[key]
	if !ok {
		return domain.QueryResult[T]{Key: key}
	}
	return e.result(key)
}

// result snapshots e. Callers hold c.mu.
func (e *entry[T]) result(key domain.QueryKey) domain.QueryResult[T] {
	pending := e.status == domain.StatusPending
	return domain.QueryResult[T]{
		Key:           key,
		Data:          e.data,
		Status:        e.status,
		IsLoading:     pending && e.lastFetchedAt.IsZero(),
		IsFetching:    pending,
		Err:           e.err,
		LastFetchedAt: e.lastFetchedAt,
	}
}
