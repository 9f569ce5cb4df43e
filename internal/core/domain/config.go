package domain

import "time"

// StorageBackend names a KeyValueStore implementation.
type StorageBackend string

// Supported storage backends.
const (
	StorageFile   StorageBackend = "file"
	StorageRedis  StorageBackend = "redis"
	StorageMemory StorageBackend = "memory"
)

// Config is the resolved configuration of a jobsync session.
type Config struct {
	API     APIConfig
	Cache   CacheConfig
	Search  SearchConfig
	Storage StorageConfig
	Log     LogConfig
	// Path is the file the configuration was read from, empty for defaults.
	Path string
}

// APIConfig configures the remote job API client.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CacheConfig configures the query caches.
type CacheConfig struct {
	StaleTime time.Duration
}

// SearchConfig configures search input handling and listing.
type SearchConfig struct {
	Debounce time.Duration
	PageSize int
}

// StorageConfig configures where bookmarks are persisted.
type StorageConfig struct {
	Backend      StorageBackend
	Dir          string
	RedisURL     string
	BookmarksKey string
}

// LogConfig configures log output.
type LogConfig struct {
	JSON bool
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultRequestTimeout,
		},
		Cache: CacheConfig{
			StaleTime: DefaultStaleTime,
		},
		Search: SearchConfig{
			Debounce: DefaultDebounceDelay,
			PageSize: DefaultPageSize,
		},
		Storage: StorageConfig{
			Backend:      StorageFile,
			Dir:          DefaultStorageDir(),
			BookmarksKey: BookmarksKey,
		},
	}
}
