package ports

import "go.trai.ch/jobsync/internal/core/domain"

// ConfigLoader resolves the session configuration.
//
//go:generate mockgen -source=config.go -destination=mocks/mock_config.go -package=mocks
type ConfigLoader interface {
	// Load reads the file at path, or discovers one when path is empty.
	// Without a file the defaults are returned.
	Load(path string) (*domain.Config, error)
}
