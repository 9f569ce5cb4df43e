// Package persist provides a set of ids that is written to durable storage on every change.
package persist

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports"
	"go.trai.ch/jobsync/internal/engine/observe"
	"go.trai.ch/zerr"
)

// Set is an ordered set of ids backed by a single storage key.
// Ids keep the order in which they were added.
type Set struct {
	store  ports.KeyValueStore
	logger ports.Logger
	key    string

	mu  sync.Mutex
	ids []int

	changes observe.Subject[[]int]
}

// Load reads key from store and returns the set it holds.
//
// A missing key yields initial. A value that cannot be decoded also yields
// initial: corrupt storage is logged as a warning and never returned as an
// error. Only a failure to read the store is an error.
func Load(ctx context.Context, store ports.KeyValueStore, logger ports.Logger, key string, initial []int) (*Set, error) {
	s := &Set{
		store:  store,
		logger: logger,
		key:    key,
	}

	ids, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = dedup(initial)
	}
	s.ids = ids
	return s, nil
}

// read returns the stored ids, or nil if the key is absent or corrupt.
func (s *Set) read(ctx context.Context) ([]int, error) {
	raw, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStorageReadFailed.Error()), "key", s.key)
	}
	if !ok {
		return nil, nil
	}

	var ids []int
	if err := json.Unmarshal(raw, &ids); err != nil {
		if s.logger != nil {
			s.logger.Warn("ignoring unreadable value stored under " + s.key + ": " + err.Error())
		}
		return nil, nil
	}
	if ids == nil {
		// A stored "null" is an empty set, not an absent key.
		ids = []int{}
	}
	return dedup(ids), nil
}

// IDs returns a copy of the ids in insertion order.
func (s *Set) IDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.ids)
}

// Has reports whether id is in the set.
func (s *Set) Has(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.ids, id)
}

// Add appends id unless it is already present.
func (s *Set) Add(ctx context.Context, id int) error {
	return s.mutate(ctx, func(ids []int) []int {
		if slices.Contains(ids, id) {
			return ids
		}
		return append(ids, id)
	})
}

// Remove deletes id if present.
func (s *Set) Remove(ctx context.Context, id int) error {
	return s.mutate(ctx, func(ids []int) []int {
		return slices.DeleteFunc(ids, func(v int) bool { return v == id })
	})
}

// Toggle removes id if present and adds it otherwise.
// It reports whether id is in the set afterwards.
func (s *Set) Toggle(ctx context.Context, id int) (bool, error) {
	var added bool
	err := s.mutate(ctx, func(ids []int) []int {
		if slices.Contains(ids, id) {
			return slices.DeleteFunc(ids, func(v int) bool { return v == id })
		}
		added = true
		return append(ids, id)
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

// mutate applies fn to a copy of the ids, writes the result and only then
// makes it visible. A failed write leaves the set unchanged.
func (s *Set) mutate(ctx context.Context, fn func([]int) []int) error {
	s.mu.Lock()
	next := fn(slices.Clone(s.ids))
	if slices.Equal(next, s.ids) {
		s.mu.Unlock()
		return nil
	}

	if err := s.write(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.ids = next
	snapshot := slices.Clone(next)
	s.mu.Unlock()

	s.changes.Publish(snapshot)
	return nil
}

func (s *Set) write(ctx context.Context, ids []int) error {
	if ids == nil {
		ids = []int{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStorageMarshalFailed.Error()), "key", s.key)
	}
	if err := s.store.Set(ctx, s.key, raw); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStorageWriteFailed.Error()), "key", s.key)
	}
	return nil
}

// Reload re-reads storage, picking up writes made by other processes.
// An absent or corrupt value leaves the set unchanged.
func (s *Set) Reload(ctx context.Context) error {
	ids, err := s.read(ctx)
	if err != nil {
		return err
	}
	if ids == nil {
		return nil
	}

	s.mu.Lock()
	if slices.Equal(ids, s.ids) {
		s.mu.Unlock()
		return nil
	}
	s.ids = ids
	snapshot := slices.Clone(ids)
	s.mu.Unlock()

	s.changes.Publish(snapshot)
	return nil
}

// Subscribe registers fn for every change of the set.
func (s *Set) Subscribe(fn func(ids []int)) (unsubscribe func()) {
	return s.changes.Subscribe(fn)
}

func dedup(ids []int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
