package domain

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultBaseURL is the job API endpoint used when none is configured.
	DefaultBaseURL = "https://bytegrad.com/course-assets/projects/rmtdev/api/data"

	// DefaultStaleTime is how long a cache entry is served without a refetch.
	DefaultStaleTime = time.Hour

	// DefaultDebounceDelay is how long search input must be stable before it propagates.
	DefaultDebounceDelay = 500 * time.Millisecond

	// DefaultRequestTimeout bounds a single job API request.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultPageSize is the number of job items per page.
	DefaultPageSize = 7

	// BookmarksKey is the storage key holding the bookmarked id list.
	BookmarksKey = "bookmarkedIds"

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "jobsync.yaml"

	// AppDirName is the name of the per-user application directory.
	AppDirName = "jobsync"

	// StorageReloadWindow coalesces storage file events before reloading.
	StorageReloadWindow = 50 * time.Millisecond

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// PrivateFilePerm is the default permission for stored values (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultStorageDir returns the directory holding persisted values.
// It prefers $XDG_DATA_HOME, then ~/.local/share, then the working directory.
func DefaultStorageDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, AppDirName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", AppDirName)
	}
	return filepath.Join("."+AppDirName, "data")
}

// DefaultConfigPath returns the per-user configuration file path.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppDirName, ConfigFileName)
}
