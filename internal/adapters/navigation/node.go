package navigation

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the navigation history Graft node.
const NodeID graft.ID = "adapter.navigation"

func init() {
	graft.Register(graft.Node[*History]{
		ID: NodeID,
		Run: func(_ context.Context) (*History, error) {
			return NewHistory(""), nil
		},
	})
}
