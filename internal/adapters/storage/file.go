// Package storage implements ports.KeyValueStore on the local file system,
// on redis and in memory.
package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/zerr"
)

// FileStore keeps one file per key inside a directory.
// Writes replace the file atomically, so readers in other processes never
// observe a partial value.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir. The directory is created on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: filepath.Clean(dir)}
}

// Dir returns the directory holding the stored files.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file holding the value of key.
// Keys are hashed so any string is a valid key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, strconv.FormatUint(xxhash.Sum64String(key), 16)+".json")
}

// Get returns the stored value of key.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := s.Path(key)
	//nolint:gosec // Path is derived from a hash inside the configured directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, zerr.With(zerr.Wrap(err, domain.ErrStorageReadFailed.Error()), "path", path)
	}
	return data, true, nil
}

// Set writes value under key.
func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStorageWriteFailed.Error()), "dir", s.dir)
	}

	path := s.Path(key)
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStorageWriteFailed.Error()), "path", path)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrStorageWriteFailed.Error()), "path", path)
	}
	if err := tmp.Chmod(domain.PrivateFilePerm); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrStorageWriteFailed.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStorageWriteFailed.Error()), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStorageWriteFailed.Error()), "path", path)
	}
	return nil
}
