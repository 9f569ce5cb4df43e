package notify

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/jobsync/internal/adapters/logger"
	"go.trai.ch/jobsync/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the error reporter Graft node.
	NodeID graft.ID = "adapter.notify"
	// ReporterNodeID exposes the same reporter as its concrete type for subscribers.
	ReporterNodeID graft.ID = "adapter.notify.reporter"
)

func init() {
	graft.Register(graft.Node[*Reporter]{
		ID:        ReporterNodeID,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Reporter, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewReporter(log), nil
		},
	})

	graft.Register(graft.Node[ports.ErrorReporter]{
		ID:        NodeID,
		DependsOn: []graft.ID{ReporterNodeID},
		Run: func(ctx context.Context) (ports.ErrorReporter, error) {
			return graft.Dep[*Reporter](ctx)
		},
	})
}
