package collector

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/jonboulle/clockwork"

	"go.trai.ch/depot/internal/adapters/config"
	"go.trai.ch/depot/internal/adapters/logger"
	"go.trai.ch/depot/internal/adapters/pool"
	"go.trai.ch/depot/internal/adapters/proxy"
	"go.trai.ch/depot/internal/core/ports"
)

const NodeID graft.ID = "engine.collector"

func init() {
	graft.Register(graft.Node[*Collector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			pool.NodeID,
			proxy.NodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: func(ctx context.Context) (*Collector, error) {
			poolStore, err := graft.Dep[ports.PoolStore](ctx)
			if err != nil {
				return nil, err
			}
			channels, err := graft.Dep[ports.ChannelStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := loader.Load()
			if err != nil {
				return nil, err
			}
			return New(poolStore, channels, log, clockwork.NewRealClock(), settings.Quarantine), nil
		},
	})
}
