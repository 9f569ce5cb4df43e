// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/jobsync/internal/core/domain"
)

// JobAPI is the remote, read-only job collaborator.
//
//go:generate mockgen -source=job_api.go -destination=mocks/mock_job_api.go -package=mocks
type JobAPI interface {
	// FetchJobItem returns the expanded job item with the given id.
	// A non-success response is returned as a *domain.NetworkError.
	FetchJobItem(ctx context.Context, id int) (*domain.JobItemResponse, error)

	// FetchJobItems returns the job items matching the search text.
	FetchJobItems(ctx context.Context, searchText string) (*domain.JobItemsResponse, error)
}
