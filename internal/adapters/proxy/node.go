package proxy

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/depot/internal/adapters/config"
	"go.trai.ch/depot/internal/core/ports"
)

const NodeID graft.ID = "adapter.channel_store"

func init() {
	graft.Register(graft.Node[ports.ChannelStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.ChannelStore, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := loader.Load()
			if err != nil {
				return nil, err
			}
			return NewLinks(settings.ProxyRoot)
		},
	})
}
