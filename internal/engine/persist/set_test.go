package persist_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jobsync/internal/core/ports/mocks"
	"go.trai.ch/jobsync/internal/engine/persist"
	"go.uber.org/mock/gomock"
)

const key = "bookmarkedIds"

type mapStore struct {
	mu     sync.Mutex
	values map[string][]byte
	writes int
}

func newMapStore() *mapStore {
	return &mapStore{values: make(map[string][]byte)}
}

func (m *mapStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mapStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.writes++
	return nil
}

func TestLoad_MissingKeyUsesInitial(t *testing.T) {
	set, err := persist.Load(context.Background(), newMapStore(), nil, key, []int{4, 4, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2}, set.IDs())
}

func TestLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()

	set, err := persist.Load(ctx, store, nil, key, nil)
	require.NoError(t, err)
	require.NoError(t, set.Add(ctx, 3))
	require.NoError(t, set.Add(ctx, 7))
	require.NoError(t, set.Add(ctx, 9))
	require.NoError(t, set.Add(ctx, 7))

	assert.JSONEq(t, `[3,7,9]`, string(store.values[key]))
	assert.Equal(t, 3, store.writes, "a no-op mutation is not written")

	reloaded, err := persist.Load(ctx, store, nil, key, []int{1})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{3, 7, 9}, reloaded.IDs())
}

func TestLoad_DuplicatesInStorageAreDropped(t *testing.T) {
	store := newMapStore()
	store.values[key] = []byte(`[5,1,5,1]`)

	set, err := persist.Load(context.Background(), store, nil, key, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 1}, set.IDs())
}

func TestLoad_CorruptValueFallsBackSilently(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).Times(1)

	store := newMapStore()
	store.values[key] = []byte(`{not json`)

	set, err := persist.Load(context.Background(), store, logger, key, []int{8})
	require.NoError(t, err)
	assert.Equal(t, []int{8}, set.IDs())
}

func TestLoad_ReadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockKeyValueStore(ctrl)
	unreachable := errors.New("connection refused")
	store.EXPECT().Get(gomock.Any(), key).Return(nil, false, unreachable)

	_, err := persist.Load(context.Background(), store, nil, key, nil)
	require.ErrorIs(t, err, unreachable)
}

func TestSet_RemoveAndToggle(t *testing.T) {
	ctx := context.Background()
	set, err := persist.Load(ctx, newMapStore(), nil, key, []int{1, 2, 3})
	require.NoError(t, err)

	require.NoError(t, set.Remove(ctx, 2))
	assert.Equal(t, []int{1, 3}, set.IDs())
	assert.False(t, set.Has(2))

	added, err := set.Toggle(ctx, 2)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []int{1, 3, 2}, set.IDs())

	added, err = set.Toggle(ctx, 1)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, []int{3, 2}, set.IDs())
}

func TestSet_FailedWriteLeavesSetUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockKeyValueStore(ctrl)
	diskFull := errors.New("no space left on device")
	store.EXPECT().Get(gomock.Any(), key).Return([]byte(`[1]`), true, nil)
	store.EXPECT().Set(gomock.Any(), key, []byte(`[1,2]`)).Return(diskFull)

	set, err := persist.Load(context.Background(), store, nil, key, nil)
	require.NoError(t, err)

	var notified int
	set.Subscribe(func([]int) { notified++ })

	err = set.Add(context.Background(), 2)
	require.ErrorIs(t, err, diskFull)
	assert.Equal(t, []int{1}, set.IDs())
	assert.Zero(t, notified)
}

func TestSet_SubscribeAndReload(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	set, err := persist.Load(ctx, store, nil, key, nil)
	require.NoError(t, err)

	var seen [][]int
	unsubscribe := set.Subscribe(func(ids []int) { seen = append(seen, ids) })

	require.NoError(t, set.Add(ctx, 10))

	// Another process rewrites the value.
	store.values[key] = []byte(`[10,11]`)
	require.NoError(t, set.Reload(ctx))
	require.NoError(t, set.Reload(ctx))

	assert.Equal(t, [][]int{{10}, {10, 11}}, seen)

	unsubscribe()
	require.NoError(t, set.Remove(ctx, 10))
	assert.Len(t, seen, 2)
}

func TestSet_ReloadIgnoresCorruptValue(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	store.values[key] = []byte(`[1]`)
	set, err := persist.Load(ctx, store, nil, key, nil)
	require.NoError(t, err)

	store.values[key] = []byte(`garbage`)
	require.NoError(t, set.Reload(ctx))
	assert.Equal(t, []int{1}, set.IDs())
}
