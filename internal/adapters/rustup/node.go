package rustup

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/depot/internal/adapters/config"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
)

const (
	InstallerNodeID  graft.ID = "adapter.installer"
	ResolverNodeID   graft.ID = "adapter.resolver"
	IdentifierNodeID graft.ID = "adapter.identifier"
)

func init() {
	graft.Register(graft.Node[ports.Installer]{
		ID:        InstallerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Installer, error) {
			settings, err := loadSettings(ctx)
			if err != nil {
				return nil, err
			}
			return NewInstaller(settings.RustupPath), nil
		},
	})

	graft.Register(graft.Node[ports.Resolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Resolver, error) {
			settings, err := loadSettings(ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(settings.ManifestBaseURL), nil
		},
	})

	graft.Register(graft.Node[ports.Identifier]{
		ID:        IdentifierNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Identifier, error) {
			return NewIdentifier(), nil
		},
	})
}

func loadSettings(ctx context.Context) (*domain.Settings, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}
