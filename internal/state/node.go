package state

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/jobsync/internal/adapters/config"     //nolint:depguard // Wired in state layer
	"go.trai.ch/jobsync/internal/adapters/jobapi"     //nolint:depguard // Wired in state layer
	"go.trai.ch/jobsync/internal/adapters/logger"     //nolint:depguard // Wired in state layer
	"go.trai.ch/jobsync/internal/adapters/navigation" //nolint:depguard // Wired in state layer
	"go.trai.ch/jobsync/internal/adapters/notify"     //nolint:depguard // Wired in state layer
	"go.trai.ch/jobsync/internal/adapters/storage"    //nolint:depguard // Wired in state layer
	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports"
	"go.trai.ch/jobsync/internal/engine/persist"
	"go.trai.ch/jobsync/internal/engine/selection"
)

const (
	// CachesNodeID is the unique identifier for the query caches Graft node.
	CachesNodeID graft.ID = "state.caches"
	// SearchTextNodeID is the unique identifier for the search text scope Graft node.
	SearchTextNodeID graft.ID = "state.search_text"
	// ActiveIDNodeID is the unique identifier for the active id scope Graft node.
	ActiveIDNodeID graft.ID = "state.active_id"
	// BookmarksNodeID is the unique identifier for the bookmarks scope Graft node.
	BookmarksNodeID graft.ID = "state.bookmarks"
	// JobItemsNodeID is the unique identifier for the job items scope Graft node.
	JobItemsNodeID graft.ID = "state.job_items"
	// ScopesNodeID is the unique identifier for the scopes Graft node.
	ScopesNodeID graft.ID = "state.scopes"
)

// Scopes hold session state, so none of these nodes is cacheable.
func init() {
	graft.Register(graft.Node[*Caches]{
		ID:        CachesNodeID,
		DependsOn: []graft.ID{config.NodeID, notify.NodeID},
		Run: func(ctx context.Context) (*Caches, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			reporter, err := graft.Dep[ports.ErrorReporter](ctx)
			if err != nil {
				return nil, err
			}
			return NewCaches(reporter, cfg.Cache.StaleTime)
		},
	})

	graft.Register(graft.Node[*SearchText]{
		ID:        SearchTextNodeID,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (*SearchText, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewSearchText(cfg.Search.Debounce), nil
		},
	})

	graft.Register(graft.Node[*ActiveID]{
		ID:        ActiveIDNodeID,
		DependsOn: []graft.ID{CachesNodeID, navigation.NodeID, jobapi.NodeID},
		Run: func(ctx context.Context) (*ActiveID, error) {
			caches, err := graft.Dep[*Caches](ctx)
			if err != nil {
				return nil, err
			}
			history, err := graft.Dep[*navigation.History](ctx)
			if err != nil {
				return nil, err
			}
			api, err := graft.Dep[ports.JobAPI](ctx)
			if err != nil {
				return nil, err
			}
			return NewActiveID(selection.NewTracker(history), caches, api)
		},
	})

	graft.Register(graft.Node[*Bookmarks]{
		ID:        BookmarksNodeID,
		DependsOn: []graft.ID{CachesNodeID, config.NodeID, storage.NodeID, logger.NodeID, jobapi.NodeID},
		Run:       runBookmarksNode,
	})

	graft.Register(graft.Node[*JobItems]{
		ID:        JobItemsNodeID,
		DependsOn: []graft.ID{SearchTextNodeID, CachesNodeID, config.NodeID, jobapi.NodeID},
		Run: func(ctx context.Context) (*JobItems, error) {
			search, err := graft.Dep[*SearchText](ctx)
			if err != nil {
				return nil, err
			}
			caches, err := graft.Dep[*Caches](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			api, err := graft.Dep[ports.JobAPI](ctx)
			if err != nil {
				return nil, err
			}
			return NewJobItems(search, caches, api, cfg.Search.PageSize)
		},
	})

	graft.Register(graft.Node[*Scopes]{
		ID:        ScopesNodeID,
		DependsOn: []graft.ID{SearchTextNodeID, ActiveIDNodeID, BookmarksNodeID, JobItemsNodeID},
		Run: func(ctx context.Context) (*Scopes, error) {
			search, err := graft.Dep[*SearchText](ctx)
			if err != nil {
				return nil, err
			}
			active, err := graft.Dep[*ActiveID](ctx)
			if err != nil {
				return nil, err
			}
			bookmarks, err := graft.Dep[*Bookmarks](ctx)
			if err != nil {
				return nil, err
			}
			items, err := graft.Dep[*JobItems](ctx)
			if err != nil {
				return nil, err
			}
			return NewScopes(search, active, bookmarks, items)
		},
	})
}

func runBookmarksNode(ctx context.Context) (*Bookmarks, error) {
	caches, err := graft.Dep[*Caches](ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.KeyValueStore](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	api, err := graft.Dep[ports.JobAPI](ctx)
	if err != nil {
		return nil, err
	}

	set, err := persist.Load(ctx, store, log, cfg.Storage.BookmarksKey, nil)
	if err != nil {
		return nil, err
	}
	return NewBookmarks(set, caches, api)
}
