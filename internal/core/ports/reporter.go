package ports

import "go.trai.ch/jobsync/internal/core/domain"

// ErrorReporter is notified once for every failed query resolution.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type ErrorReporter interface {
	Report(key domain.QueryKey, err error)
}
