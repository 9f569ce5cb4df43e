// Package config provides the configuration loader for jobsync.
package config

import (
	"net/url"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	// Cwd is where discovery starts. Empty means the process working directory.
	Cwd string
	// UserConfigPath is the fallback file. Empty means domain.DefaultConfigPath().
	UserConfigPath string
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration at path. With an empty path it looks for
// jobsync.yaml in the working directory and its parents, then in the user
// config directory, and falls back to the defaults.
func (l *Loader) Load(path string) (*domain.Config, error) {
	if path == "" {
		found, err := l.findConfiguration()
		if err != nil {
			return nil, err
		}
		if found == "" {
			return domain.DefaultConfig(), nil
		}
		path = found
	}

	var file Configfile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	cfg, err := resolve(&file, filepath.Dir(path))
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	cfg.Path = path
	return cfg, nil
}

func (l *Loader) findConfiguration() (string, error) {
	currentDir := l.Cwd
	if currentDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
		}
		currentDir = wd
	}

	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	userPath := l.UserConfigPath
	if userPath == "" {
		userPath = domain.DefaultConfigPath()
	}
	if userPath != "" {
		if _, err := os.Stat(userPath); err == nil {
			return userPath, nil
		}
	}

	if l.Logger != nil {
		l.Logger.Info("no " + domain.ConfigFileName + " found, using defaults")
	}
	return "", nil
}

// resolve applies file on top of the defaults. Relative storage directories
// are resolved against baseDir.
func resolve(file *Configfile, baseDir string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	if file.API.BaseURL != "" {
		u, err := url.Parse(file.API.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidBaseURL, "api.base_url must be absolute"), "base_url", file.API.BaseURL)
		}
		cfg.API.BaseURL = file.API.BaseURL
	}

	durations := []struct {
		key    string
		value  string
		target *time.Duration
	}{
		{key: "api.timeout", value: file.API.Timeout, target: &cfg.API.Timeout},
		{key: "cache.stale_time", value: file.Cache.StaleTime, target: &cfg.Cache.StaleTime},
		{key: "search.debounce", value: file.Search.Debounce, target: &cfg.Search.Debounce},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil || parsed < 0 {
			return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidDuration, "invalid "+d.key), "key", d.key), "value", d.value)
		}
		*d.target = parsed
	}

	if file.Search.PageSize > 0 {
		cfg.Search.PageSize = file.Search.PageSize
	}

	switch backend := domain.StorageBackend(file.Storage.Backend); backend {
	case "":
	case domain.StorageFile, domain.StorageRedis, domain.StorageMemory:
		cfg.Storage.Backend = backend
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownStorageBackend, "invalid storage.backend"), "backend", file.Storage.Backend)
	}

	if file.Storage.Dir != "" {
		dir := file.Storage.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(baseDir, dir)
		}
		cfg.Storage.Dir = filepath.Clean(dir)
	}
	if file.Storage.RedisURL != "" {
		cfg.Storage.RedisURL = file.Storage.RedisURL
	}
	if file.Storage.BookmarksKey != "" {
		cfg.Storage.BookmarksKey = file.Storage.BookmarksKey
	}
	if cfg.Storage.Backend == domain.StorageRedis && cfg.Storage.RedisURL == "" {
		return nil, zerr.Wrap(domain.ErrMissingRedisURL, "invalid storage config")
	}

	cfg.Log.JSON = file.Log.JSON
	return cfg, nil
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is chosen by the user
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
