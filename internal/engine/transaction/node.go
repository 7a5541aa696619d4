package transaction

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/depot/internal/adapters/logger"
	"go.trai.ch/depot/internal/adapters/pool"
	"go.trai.ch/depot/internal/adapters/proxy"
	"go.trai.ch/depot/internal/adapters/rustup"
	"go.trai.ch/depot/internal/adapters/telemetry/progrock"
	"go.trai.ch/depot/internal/core/ports"
)

const NodeID graft.ID = "engine.transaction"

func init() {
	graft.Register(graft.Node[*Engine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			pool.NodeID,
			proxy.NodeID,
			rustup.InstallerNodeID,
			rustup.ResolverNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Engine, error) {
			poolStore, err := graft.Dep[ports.PoolStore](ctx)
			if err != nil {
				return nil, err
			}
			channels, err := graft.Dep[ports.ChannelStore](ctx)
			if err != nil {
				return nil, err
			}
			installer, err := graft.Dep[ports.Installer](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[ports.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return New(poolStore, channels, installer, resolver, log, telemetry), nil
		},
	})
}
