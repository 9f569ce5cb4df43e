// Package state composes the engine into the four shared state scopes:
// search text, active id, bookmarks and the job item list.
//
// Every scope exposes Subscribe, returning an unsubscribe function, and
// explicit Init and Dispose lifecycle operations. Scopes are built once at
// composition time; a constructor given a nil dependency fails with
// domain.ErrScopeMissing.
package state

import (
	"context"
	"time"

	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports"
	"go.trai.ch/jobsync/internal/engine/query"
	"go.trai.ch/zerr"
)

// Caches holds the query caches shared by all scopes.
type Caches struct {
	Items *query.Cache[domain.JobItemExpanded]
	Lists *query.Cache[[]domain.JobItem]
}

// NewCaches creates empty caches that report failures to reporter.
func NewCaches(reporter ports.ErrorReporter, staleTime time.Duration) (*Caches, error) {
	if reporter == nil {
		return nil, missing("caches", "error reporter")
	}
	return &Caches{
		Items: query.NewCache[domain.JobItemExpanded](reporter, staleTime),
		Lists: query.NewCache[[]domain.JobItem](reporter, staleTime),
	}, nil
}

// ItemFetcher returns the fetcher of the expanded job item addressed by a key.
func ItemFetcher(api ports.JobAPI) func(domain.QueryKey) query.Fetcher[domain.JobItemExpanded] {
	return func(key domain.QueryKey) query.Fetcher[domain.JobItemExpanded] {
		return func(ctx context.Context) (domain.JobItemExpanded, error) {
			resp, err := api.FetchJobItem(ctx, key.ID)
			if err != nil {
				return domain.JobItemExpanded{}, err
			}
			return resp.JobItem, nil
		}
	}
}

// ListFetcher returns the fetcher of the search results addressed by a key.
func ListFetcher(api ports.JobAPI) func(domain.QueryKey) query.Fetcher[[]domain.JobItem] {
	return func(key domain.QueryKey) query.Fetcher[[]domain.JobItem] {
		return func(ctx context.Context) ([]domain.JobItem, error) {
			resp, err := api.FetchJobItems(ctx, key.Text)
			if err != nil {
				return nil, err
			}
			return resp.JobItems, nil
		}
	}
}

func missing(scope, dependency string) error {
	err := zerr.Wrap(domain.ErrScopeMissing, scope+" scope requires "+dependency)
	return zerr.With(zerr.With(err, "scope", scope), "dependency", dependency)
}
