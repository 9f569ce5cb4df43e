package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/jobsync/internal/adapters/logger"
	"go.trai.ch/jobsync/internal/adapters/storage"
	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports"
)

// NodeID is the unique identifier for the storage watcher Graft node.
const NodeID graft.ID = "adapter.watcher"

func init() {
	graft.Register(graft.Node[ports.Watcher]{
		ID:        NodeID,
		DependsOn: []graft.ID{storage.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Watcher, error) {
			store, err := graft.Dep[ports.KeyValueStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return For(store, log), nil
		},
	})
}

// For returns a file watcher when store is file backed, and a NoopWatcher otherwise.
func For(store ports.KeyValueStore, log ports.Logger) ports.Watcher {
	if files, ok := store.(FileLocator); ok {
		return NewWatcher(files, log, domain.StorageReloadWindow)
	}
	return NoopWatcher{}
}
