// Package transaction implements the add and remove operations: pool
// entries are installed and published at most once, then channels are
// repointed at them atomically.
package transaction

import (
	"context"

	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
)

// Engine coordinates resolution, installation, publication and channel
// repoints. Cross-process safety comes from the stores' atomic renames;
// the engine only deduplicates identical installs within this process.
type Engine struct {
	pool      ports.PoolStore
	channels  ports.ChannelStore
	installer ports.Installer
	resolver  ports.Resolver
	log       ports.Logger
	telemetry ports.Telemetry

	installGroup singleflight.Group
}

// New creates a transaction engine.
func New(
	pool ports.PoolStore,
	channels ports.ChannelStore,
	installer ports.Installer,
	resolver ports.Resolver,
	log ports.Logger,
	telemetry ports.Telemetry,
) *Engine {
	return &Engine{
		pool:      pool,
		channels:  channels,
		installer: installer,
		resolver:  resolver,
		log:       log,
		telemetry: telemetry,
	}
}

// Ensure makes the channel point at a pool entry for the spec,
// resolving, installing and publishing as needed. It returns the entry
// the channel ends up pointing at.
func (e *Engine) Ensure(ctx context.Context, channel string, spec domain.ToolchainSpec) (*domain.PoolEntry, error) {
	if err := domain.ValidateChannelName(channel); err != nil {
		return nil, err
	}

	resolved, err := e.resolver.Resolve(ctx, spec)
	if err != nil {
		return nil, err
	}

	entry, err := e.ensureEntry(ctx, resolved)
	if err != nil {
		return nil, err
	}

	if err := e.channels.Set(channel, *entry); err != nil {
		return nil, err
	}

	e.log.Info("channel " + channel + " -> " + entry.Fingerprint.String())
	return entry, nil
}

// EnsureResolved is Ensure for a toolchain whose identity is already
// known, bypassing manifest resolution.
func (e *Engine) EnsureResolved(ctx context.Context, channel string, resolved domain.ResolvedToolchain) (*domain.PoolEntry, error) {
	if err := domain.ValidateChannelName(channel); err != nil {
		return nil, err
	}

	entry, err := e.ensureEntry(ctx, resolved)
	if err != nil {
		return nil, err
	}

	if err := e.channels.Set(channel, *entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Remove drops the channel. Pool entries are left for the collector.
func (e *Engine) Remove(ctx context.Context, channel string) error {
	if err := domain.ValidateChannelName(channel); err != nil {
		return err
	}
	return e.channels.Remove(channel)
}

// ensureEntry returns the pool entry for the resolved toolchain,
// installing and publishing it if absent. Identical concurrent requests
// within the process collapse to a single install.
func (e *Engine) ensureEntry(ctx context.Context, resolved domain.ResolvedToolchain) (*domain.PoolEntry, error) {
	fp := resolved.Fingerprint()

	result, err, _ := e.installGroup.Do(fp.String(), func() (any, error) {
		ctx, vertex := e.telemetry.Record(ctx, "toolchain "+resolved.Version+" ("+fp.String()+")")

		existing, err := e.pool.Lookup(fp)
		if err != nil {
			vertex.Complete(err)
			return nil, err
		}
		if existing != nil {
			vertex.Cached()
			vertex.Complete(nil)
			return existing, nil
		}

		entry, err := e.installAndPublish(ctx, resolved, fp)
		vertex.Complete(err)
		return entry, err
	})
	if err != nil {
		return nil, err
	}

	entry, ok := result.(*domain.PoolEntry)
	if !ok {
		return nil, zerr.New("unexpected install result type")
	}
	return entry, nil
}

func (e *Engine) installAndPublish(ctx context.Context, resolved domain.ResolvedToolchain, fp domain.Fingerprint) (*domain.PoolEntry, error) {
	stagingPath, err := e.pool.Stage(fp)
	if err != nil {
		return nil, err
	}

	if err := e.installer.Install(ctx, resolved, stagingPath); err != nil {
		if discardErr := e.pool.DiscardStaging(stagingPath); discardErr != nil {
			e.log.Error(discardErr)
		}
		return nil, err
	}

	return e.pool.Publish(stagingPath, fp)
}
