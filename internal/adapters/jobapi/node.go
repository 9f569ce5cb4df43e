package jobapi

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/jobsync/internal/adapters/config"
	"go.trai.ch/jobsync/internal/adapters/telemetry"
	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports"
)

// NodeID is the unique identifier for the job API client Graft node.
const NodeID graft.ID = "adapter.jobapi"

func init() {
	graft.Register(graft.Node[ports.JobAPI]{
		ID:        NodeID,
		DependsOn: []graft.ID{config.NodeID, telemetry.TracerNodeID},
		Run: func(ctx context.Context) (ports.JobAPI, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return NewClient(cfg.API.BaseURL, cfg.API.Timeout, tracer)
		},
	})
}
