package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/jobsync/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.trai.ch/jobsync/internal/adapters/jobapi"     //nolint:depguard // Wired in app layer
	"go.trai.ch/jobsync/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"go.trai.ch/jobsync/internal/adapters/navigation" //nolint:depguard // Wired in app layer
	"go.trai.ch/jobsync/internal/adapters/notify"     //nolint:depguard // Wired in app layer
	"go.trai.ch/jobsync/internal/adapters/storage"    //nolint:depguard // Wired in app layer
	"go.trai.ch/jobsync/internal/adapters/watcher"    //nolint:depguard // Wired in app layer
	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports"
	"go.trai.ch/jobsync/internal/state"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
	// SessionNodeID is the unique identifier for the per-command session Graft node.
	SessionNodeID graft.ID = "app.session"
)

// Components contains the initialized application components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.LoaderNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(loader, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{AppNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})

	graft.Register(graft.Node[*Session]{
		ID: SessionNodeID,
		DependsOn: []graft.ID{
			config.NodeID,
			state.ScopesNodeID,
			state.CachesNodeID,
			jobapi.NodeID,
			storage.NodeID,
			watcher.NodeID,
			notify.ReporterNodeID,
			navigation.NodeID,
			logger.NodeID,
		},
		Run: runSessionNode,
	})
}

func runSessionNode(ctx context.Context) (*Session, error) {
	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}
	scopes, err := graft.Dep[*state.Scopes](ctx)
	if err != nil {
		return nil, err
	}
	caches, err := graft.Dep[*state.Caches](ctx)
	if err != nil {
		return nil, err
	}
	api, err := graft.Dep[ports.JobAPI](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.KeyValueStore](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}
	reporter, err := graft.Dep[*notify.Reporter](ctx)
	if err != nil {
		return nil, err
	}
	history, err := graft.Dep[*navigation.History](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Session{
		Config:   cfg,
		Scopes:   scopes,
		Caches:   caches,
		API:      api,
		Store:    store,
		Watcher:  w,
		Reporter: reporter,
		History:  history,
		Logger:   log,
	}, nil
}
