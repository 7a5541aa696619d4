// Package app implements the application layer for depot.
package app

import (
	"context"
	"os"

	"go.trai.ch/zerr"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/depot/internal/engine/collector"
	"go.trai.ch/depot/internal/engine/transaction"
)

// App represents the main application logic.
type App struct {
	engine       *transaction.Engine
	collector    *collector.Collector
	channels     ports.ChannelStore
	pool         ports.PoolStore
	resolver     ports.Resolver
	identifier   ports.Identifier
	configLoader ports.ConfigLoader
	log          ports.Logger
}

// New creates a new App instance.
func New(
	engine *transaction.Engine,
	coll *collector.Collector,
	channels ports.ChannelStore,
	poolStore ports.PoolStore,
	resolver ports.Resolver,
	identifier ports.Identifier,
	configLoader ports.ConfigLoader,
	log ports.Logger,
) *App {
	return &App{
		engine:       engine,
		collector:    coll,
		channels:     channels,
		pool:         poolStore,
		resolver:     resolver,
		identifier:   identifier,
		configLoader: configLoader,
		log:          log,
	}
}

// Add installs the toolchain for the channel and points the channel at
// it. When source is non-empty the channel becomes an alias: if source
// is already installed its identity is recovered from disk and reused
// without touching the manifest, otherwise the channel is resolved from
// the source name. Unreferenced entries are collected opportunistically
// afterwards.
func (a *App) Add(ctx context.Context, channel, source string, components []string) (*domain.PoolEntry, error) {
	if source != "" {
		if resolved, ok := a.installedIdentity(source); ok {
			entry, err := a.engine.EnsureResolved(ctx, channel, resolved)
			if err != nil {
				return nil, err
			}
			a.collectOpportunistically()
			return entry, nil
		}
	}

	resolveFrom := channel
	if source != "" {
		resolveFrom = source
	}

	spec := domain.ToolchainSpec{Channel: resolveFrom, Components: components}
	entry, err := a.engine.Ensure(ctx, channel, spec)
	if err != nil {
		return nil, err
	}

	a.collectOpportunistically()
	return entry, nil
}

// installedIdentity recovers the identity of the toolchain a channel
// points at. ok is false when the channel is not installed or its
// identity cannot be read; the caller falls back to manifest resolution.
func (a *App) installedIdentity(channel string) (domain.ResolvedToolchain, bool) {
	entry, err := a.channels.Resolve(channel)
	if err != nil {
		return domain.ResolvedToolchain{}, false
	}

	resolved, err := a.identifier.Identify(entry.Path)
	if err != nil {
		a.log.Warn("could not identify " + channel + ", resolving instead: " + err.Error())
		return domain.ResolvedToolchain{}, false
	}
	return resolved, true
}

// Remove drops the channel and opportunistically collects entries that
// lost their last reference.
func (a *App) Remove(ctx context.Context, channel string) error {
	if err := a.engine.Remove(ctx, channel); err != nil {
		return err
	}

	a.collectOpportunistically()
	return nil
}

// Collect runs one full collection pass.
func (a *App) Collect() (*domain.CollectionReport, error) {
	return a.collector.Collect()
}

// Status describes the current channels and pool entries.
type Status struct {
	Channels map[string]domain.Fingerprint
	Entries  []domain.PoolEntry
}

// Status reports the channel mapping and the pool contents.
func (a *App) Status() (*Status, error) {
	channels, err := a.channels.List()
	if err != nil {
		return nil, err
	}
	entries, err := a.pool.List()
	if err != nil {
		return nil, err
	}
	return &Status{Channels: channels, Entries: entries}, nil
}

// Identify reads the identity of the installation a channel points at
// from its files on disk.
func (a *App) Identify(channel string) (domain.ResolvedToolchain, error) {
	entry, err := a.channels.Resolve(channel)
	if err != nil {
		return domain.ResolvedToolchain{}, err
	}
	return a.identifier.Identify(entry.Path)
}

// Fingerprint resolves a spec and returns the identity it would have
// in the pool, without installing anything.
func (a *App) Fingerprint(ctx context.Context, spec domain.ToolchainSpec) (domain.Fingerprint, domain.ResolvedToolchain, error) {
	resolved, err := a.resolver.Resolve(ctx, spec)
	if err != nil {
		return "", domain.ResolvedToolchain{}, err
	}
	return resolved.Fingerprint(), resolved, nil
}

// Nuke deletes the pool, the staging area and all channels.
func (a *App) Nuke() error {
	settings, err := a.configLoader.Load()
	if err != nil {
		return err
	}

	for _, root := range []string{settings.ProxyRoot, settings.PoolRoot, settings.StagingRoot} {
		if err := os.RemoveAll(root); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to remove directory"), "path", root)
		}
	}
	return nil
}

// collectOpportunistically runs a collection pass after a mutating
// operation. Failures are logged, never surfaced: the operation that
// triggered the pass already succeeded.
func (a *App) collectOpportunistically() {
	report, err := a.collector.Collect()
	if err != nil {
		a.log.Warn("collection pass failed: " + err.Error())
		return
	}
	for _, failure := range report.Failures {
		a.log.Warn("failed to reclaim " + failure.Fingerprint.String() + ": " + failure.Err.Error())
	}
}
