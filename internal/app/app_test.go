package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/depot/internal/adapters/pool"
	"go.trai.ch/depot/internal/adapters/proxy"
	"go.trai.ch/depot/internal/adapters/telemetry"
	"go.trai.ch/depot/internal/app"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports/mocks"
	"go.trai.ch/depot/internal/engine/collector"
	"go.trai.ch/depot/internal/engine/transaction"
)

type fixture struct {
	app        *app.App
	pool       *pool.Store
	channels   *proxy.Links
	installer  *mocks.MockInstaller
	resolver   *mocks.MockResolver
	identifier *mocks.MockIdentifier
	loader     *mocks.MockConfigLoader
	settings   *domain.Settings
}

// newFixture builds an app on real pool and channel stores with the
// external collaborators mocked. The collector clock sits one hour in
// the future so freshly published entries are outside quarantine.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	tmp := t.TempDir()
	settings := domain.DefaultSettings(tmp)

	poolStore, err := pool.NewStore(settings.PoolRoot, settings.StagingRoot)
	require.NoError(t, err)

	channels, err := proxy.NewLinks(settings.ProxyRoot)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	installer := mocks.NewMockInstaller(ctrl)
	resolver := mocks.NewMockResolver(ctrl)
	identifier := mocks.NewMockIdentifier(ctrl)
	loader := mocks.NewMockConfigLoader(ctrl)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	engine := transaction.New(poolStore, channels, installer, resolver, log, telemetry.NewNoOp())
	clock := clockwork.NewFakeClockAt(time.Now().Add(time.Hour))
	coll := collector.New(poolStore, channels, log, clock, settings.Quarantine)

	return &fixture{
		app:        app.New(engine, coll, channels, poolStore, resolver, identifier, loader, log),
		pool:       poolStore,
		channels:   channels,
		installer:  installer,
		resolver:   resolver,
		identifier: identifier,
		loader:     loader,
		settings:   settings,
	}
}

func (f *fixture) expectInstall(resolved domain.ResolvedToolchain) {
	f.installer.EXPECT().
		Install(gomock.Any(), resolved, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.ResolvedToolchain, destDir string) error {
			return os.WriteFile(filepath.Join(destDir, "marker"), []byte(resolved.Version), 0o644)
		})
}

func TestApp_Add(t *testing.T) {
	f := newFixture(t)
	resolved := domain.ResolvedToolchain{Version: "1.80.1", Components: []string{"clippy"}}

	f.resolver.EXPECT().
		Resolve(gomock.Any(), domain.ToolchainSpec{Channel: "stable", Components: []string{"clippy"}}).
		Return(resolved, nil)
	f.expectInstall(resolved)

	entry, err := f.app.Add(context.Background(), "stable", "", []string{"clippy"})
	require.NoError(t, err)
	require.NotNil(t, entry)

	got, err := f.channels.Resolve("stable")
	require.NoError(t, err)
	assert.Equal(t, entry.Fingerprint, got.Fingerprint)
}

func TestApp_AddWithSourceCreatesAlias(t *testing.T) {
	f := newFixture(t)
	resolved := domain.ResolvedToolchain{Version: "1.80.1"}

	// The source channel is not installed, so the alias resolves from
	// the source name, not from its own.
	f.resolver.EXPECT().
		Resolve(gomock.Any(), domain.ToolchainSpec{Channel: "stable"}).
		Return(resolved, nil)
	f.expectInstall(resolved)

	_, err := f.app.Add(context.Background(), "prod", "stable", nil)
	require.NoError(t, err)

	got, err := f.channels.Resolve("prod")
	require.NoError(t, err)
	assert.Equal(t, resolved.Fingerprint(), got.Fingerprint)
}

func TestApp_AddWithSourceReusesInstalledIdentity(t *testing.T) {
	f := newFixture(t)
	resolved := domain.ResolvedToolchain{Version: "1.80.1"}

	f.resolver.EXPECT().
		Resolve(gomock.Any(), domain.ToolchainSpec{Channel: "stable"}).
		Return(resolved, nil)
	f.expectInstall(resolved)

	entry, err := f.app.Add(context.Background(), "stable", "", nil)
	require.NoError(t, err)

	// The source is installed: its identity comes from the files on
	// disk and the manifest is never consulted for the alias.
	f.identifier.EXPECT().
		Identify(entry.Path).
		Return(resolved, nil)

	aliased, err := f.app.Add(context.Background(), "prod", "stable", nil)
	require.NoError(t, err)
	assert.Equal(t, entry.Fingerprint, aliased.Fingerprint)

	got, err := f.channels.Resolve("prod")
	require.NoError(t, err)
	assert.Equal(t, entry.Fingerprint, got.Fingerprint)
}

func TestApp_RemoveReclaimsOrphanedEntry(t *testing.T) {
	f := newFixture(t)
	resolved := domain.ResolvedToolchain{Version: "1.80.1"}

	f.resolver.EXPECT().
		Resolve(gomock.Any(), domain.ToolchainSpec{Channel: "stable"}).
		Return(resolved, nil)
	f.expectInstall(resolved)

	entry, err := f.app.Add(context.Background(), "stable", "", nil)
	require.NoError(t, err)

	require.NoError(t, f.app.Remove(context.Background(), "stable"))

	// The opportunistic pass after removal reclaimed the entry.
	_, statErr := os.Stat(entry.Path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestApp_RemoveKeepsSharedEntry(t *testing.T) {
	f := newFixture(t)
	resolved := domain.ResolvedToolchain{Version: "1.80.1"}

	f.resolver.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(resolved, nil)
	f.expectInstall(resolved)
	f.identifier.EXPECT().
		Identify(gomock.Any()).
		Return(resolved, nil)

	entry, err := f.app.Add(context.Background(), "stable", "", nil)
	require.NoError(t, err)
	_, err = f.app.Add(context.Background(), "prod", "stable", nil)
	require.NoError(t, err)

	require.NoError(t, f.app.Remove(context.Background(), "stable"))

	// prod still references the entry, so it survives the pass.
	_, statErr := os.Stat(entry.Path)
	assert.NoError(t, statErr)
}

func TestApp_Status(t *testing.T) {
	f := newFixture(t)
	resolved := domain.ResolvedToolchain{Version: "1.80.1"}

	f.resolver.EXPECT().
		Resolve(gomock.Any(), domain.ToolchainSpec{Channel: "stable"}).
		Return(resolved, nil)
	f.expectInstall(resolved)

	_, err := f.app.Add(context.Background(), "stable", "", nil)
	require.NoError(t, err)

	status, err := f.app.Status()
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.Fingerprint{"stable": resolved.Fingerprint()}, status.Channels)
	require.Len(t, status.Entries, 1)
	assert.Equal(t, resolved.Fingerprint(), status.Entries[0].Fingerprint)
}

func TestApp_Identify(t *testing.T) {
	f := newFixture(t)
	resolved := domain.ResolvedToolchain{Version: "1.80.1"}

	f.resolver.EXPECT().
		Resolve(gomock.Any(), domain.ToolchainSpec{Channel: "stable"}).
		Return(resolved, nil)
	f.expectInstall(resolved)

	entry, err := f.app.Add(context.Background(), "stable", "", nil)
	require.NoError(t, err)

	f.identifier.EXPECT().
		Identify(entry.Path).
		Return(domain.ResolvedToolchain{Version: "1.80.1", Components: []string{"rustc"}}, nil)

	got, err := f.app.Identify("stable")
	require.NoError(t, err)
	assert.Equal(t, "1.80.1", got.Version)
}

func TestApp_Fingerprint(t *testing.T) {
	f := newFixture(t)
	spec := domain.ToolchainSpec{Channel: "stable", Components: []string{"clippy"}}
	resolved := domain.ResolvedToolchain{Version: "1.80.1", Components: []string{"clippy"}}

	f.resolver.EXPECT().Resolve(gomock.Any(), spec).Return(resolved, nil)

	fp, got, err := f.app.Fingerprint(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, resolved.Fingerprint(), fp)
	assert.Equal(t, resolved, got)
}

func TestApp_Nuke(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load().Return(f.settings, nil)

	require.NoError(t, f.app.Nuke())

	for _, root := range []string{f.settings.PoolRoot, f.settings.StagingRoot, f.settings.ProxyRoot} {
		_, statErr := os.Stat(root)
		assert.True(t, errors.Is(statErr, os.ErrNotExist), "expected %s to be gone", root)
	}
}
