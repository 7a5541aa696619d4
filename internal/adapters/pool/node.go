package pool

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/depot/internal/adapters/config"
	"go.trai.ch/depot/internal/core/ports"
)

const NodeID graft.ID = "adapter.pool_store"

func init() {
	graft.Register(graft.Node[ports.PoolStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.PoolStore, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := loader.Load()
			if err != nil {
				return nil, err
			}
			return NewStore(settings.PoolRoot, settings.StagingRoot)
		},
	})
}
