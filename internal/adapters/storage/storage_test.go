package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jobsync/internal/adapters/storage"
	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports"
)

// exerciseStore checks the ports.KeyValueStore contract.
func exerciseStore(t *testing.T, store ports.KeyValueStore, key string) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok, "absent key")

	require.NoError(t, store.Set(ctx, key, []byte("[1,2]")))
	got, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[1,2]", string(got))

	require.NoError(t, store.Set(ctx, key, []byte("[]")))
	got, ok, err = store.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", string(got), "set replaces the previous value")
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	exerciseStore(t, storage.NewFileStore(dir), domain.BookmarksKey)
}

func TestFileStore_WritesPrivateFileAtomically(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewFileStore(dir)
	require.NoError(t, store.Set(context.Background(), domain.BookmarksKey, []byte("[3]")))

	info, err := os.Stat(store.Path(domain.BookmarksKey))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.PrivateFilePerm), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary files are left behind")
	assert.Equal(t, filepath.Base(store.Path(domain.BookmarksKey)), entries[0].Name())
}

func TestFileStore_KeysMapToDistinctFiles(t *testing.T) {
	store := storage.NewFileStore(t.TempDir())
	assert.NotEqual(t, store.Path("a"), store.Path("b"))
	assert.Equal(t, store.Path("../escape"), filepath.Join(store.Dir(), filepath.Base(store.Path("../escape"))))
}

func TestFileStore_SharedBetweenInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	require.NoError(t, storage.NewFileStore(dir).Set(ctx, "k", []byte("v")))

	got, ok, err := storage.NewFileStore(dir).Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", string(got))
}

func TestFileStore_ReadFailure(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewFileStore(dir)
	// A directory where the value file should be cannot be read as a file.
	require.NoError(t, os.Mkdir(store.Path("k"), domain.DirPerm))

	_, _, err := store.Get(context.Background(), "k")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrStorageReadFailed.Error())
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, storage.NewMemoryStore(), domain.BookmarksKey)
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	value := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'x'

	got, _, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("JOBSYNC_TEST_REDIS_URL")
	if url == "" {
		t.Skip("JOBSYNC_TEST_REDIS_URL not set")
	}

	store, err := storage.NewRedisStore(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	exerciseStore(t, store, "jobsync-test-"+uuid.NewString())
}

func TestNewRedisStore_InvalidURL(t *testing.T) {
	_, err := storage.NewRedisStore(context.Background(), "://nope")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrStorageConnectFailed.Error())
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	fileStore, err := storage.Open(ctx, domain.StorageConfig{Backend: domain.StorageFile, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &storage.FileStore{}, fileStore)

	memStore, err := storage.Open(ctx, domain.StorageConfig{Backend: domain.StorageMemory})
	require.NoError(t, err)
	assert.IsType(t, &storage.MemoryStore{}, memStore)

	_, err = storage.Open(ctx, domain.StorageConfig{Backend: "sqlite"})
	assert.ErrorIs(t, err, domain.ErrUnknownStorageBackend)
}
