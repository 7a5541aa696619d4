package app

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/depot/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/depot/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/depot/internal/adapters/pool"
	"go.trai.ch/depot/internal/adapters/proxy"
	"go.trai.ch/depot/internal/adapters/rustup"
	telemetryprogrock "go.trai.ch/depot/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/depot/internal/engine/collector"
	"go.trai.ch/depot/internal/engine/transaction"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			transaction.NodeID,
			collector.NodeID,
			pool.NodeID,
			proxy.NodeID,
			rustup.ResolverNodeID,
			rustup.IdentifierNodeID,
			config.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetryprogrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	engine, err := graft.Dep[*transaction.Engine](ctx)
	if err != nil {
		return nil, err
	}

	coll, err := graft.Dep[*collector.Collector](ctx)
	if err != nil {
		return nil, err
	}

	channels, err := graft.Dep[ports.ChannelStore](ctx)
	if err != nil {
		return nil, err
	}

	poolStore, err := graft.Dep[ports.PoolStore](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[ports.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	identifier, err := graft.Dep[ports.Identifier](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(engine, coll, channels, poolStore, resolver, identifier, loader, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       a,
		Logger:    log,
		Telemetry: tel,
	}, nil
}
