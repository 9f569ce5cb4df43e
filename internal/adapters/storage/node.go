package storage

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/jobsync/internal/adapters/config"
	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the key-value store Graft node.
const NodeID graft.ID = "adapter.storage"

func init() {
	graft.Register(graft.Node[ports.KeyValueStore]{
		ID:        NodeID,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.KeyValueStore, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return Open(ctx, cfg.Storage)
		},
	})
}

// Open returns the store selected by cfg.Backend.
func Open(ctx context.Context, cfg domain.StorageConfig) (ports.KeyValueStore, error) {
	switch cfg.Backend {
	case domain.StorageFile, "":
		return NewFileStore(cfg.Dir), nil
	case domain.StorageRedis:
		return NewRedisStore(ctx, cfg.RedisURL)
	case domain.StorageMemory:
		return NewMemoryStore(), nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownStorageBackend, "cannot open storage"), "backend", string(cfg.Backend))
	}
}
