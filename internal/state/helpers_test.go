package state_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports/mocks"
	"go.trai.ch/jobsync/internal/engine/persist"
	"go.trai.ch/jobsync/internal/state"
	"go.uber.org/mock/gomock"
)

type fakeNavigator struct {
	mu        sync.Mutex
	fragment  string
	listeners map[int]func(string)
	next      int
}

func newFakeNavigator(fragment string) *fakeNavigator {
	return &fakeNavigator{fragment: fragment, listeners: make(map[int]func(string))}
}

func (n *fakeNavigator) Fragment() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.fragment
}

func (n *fakeNavigator) Subscribe(fn func(string)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.next
	n.next++
	n.listeners[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.listeners, id)
	}
}

func (n *fakeNavigator) navigate(fragment string) {
	n.mu.Lock()
	n.fragment = fragment
	fns := make([]func(string), 0, len(n.listeners))
	for _, fn := range n.listeners {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(fragment)
	}
}

func (n *fakeNavigator) listenerCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}

type memStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func newCaches(t *testing.T, reporter *mocks.MockErrorReporter) *state.Caches {
	t.Helper()
	caches, err := state.NewCaches(reporter, time.Hour)
	require.NoError(t, err)
	return caches
}

func loadSet(t *testing.T, stored string) *persist.Set {
	t.Helper()
	store := &memStore{values: map[string][]byte{}}
	if stored != "" {
		store.values[domain.BookmarksKey] = []byte(stored)
	}
	set, err := persist.Load(context.Background(), store, nil, domain.BookmarksKey, nil)
	require.NoError(t, err)
	return set
}

func expanded(id int, title string) *domain.JobItemResponse {
	return &domain.JobItemResponse{
		Public:  true,
		JobItem: domain.JobItemExpanded{JobItem: domain.JobItem{ID: id, Title: title}},
	}
}

func newController(t *testing.T) (*gomock.Controller, *mocks.MockJobAPI, *mocks.MockErrorReporter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	return ctrl, mocks.NewMockJobAPI(ctrl), mocks.NewMockErrorReporter(ctrl)
}
