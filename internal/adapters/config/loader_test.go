package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/depot/internal/adapters/config"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports/mocks"
)

func newTestLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	log := mocks.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return log
}

func TestLoader_MissingFileYieldsDefaults(t *testing.T) {
	loader := config.NewLoaderAt(filepath.Join(t.TempDir(), "depot.yaml"), newTestLogger(t))

	settings, err := loader.Load()
	require.NoError(t, err)

	defaults := domain.DefaultSettings(filepath.Join(xdg.DataHome, domain.AppDirName))
	assert.Equal(t, defaults, settings)
}

func TestLoader_OverlaysFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "depot.yaml")
	content := `
poolRoot: /data/depot/pool
stagingRoot: /data/depot/staging
proxyRoot: /data/depot/toolchains
quarantine: 30m
rustup: /opt/rustup/bin/rustup
manifestBaseUrl: https://mirror.example.com/dist
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	loader := config.NewLoaderAt(path, newTestLogger(t))

	settings, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "/data/depot/pool", settings.PoolRoot)
	assert.Equal(t, "/data/depot/staging", settings.StagingRoot)
	assert.Equal(t, "/data/depot/toolchains", settings.ProxyRoot)
	assert.Equal(t, 30*time.Minute, settings.Quarantine)
	assert.Equal(t, "/opt/rustup/bin/rustup", settings.RustupPath)
	assert.Equal(t, "https://mirror.example.com/dist", settings.ManifestBaseURL)
}

func TestLoader_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "depot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quarantine: 1h\n"), 0o644))

	loader := config.NewLoaderAt(path, newTestLogger(t))

	settings, err := loader.Load()
	require.NoError(t, err)

	defaults := domain.DefaultSettings(filepath.Join(xdg.DataHome, domain.AppDirName))
	assert.Equal(t, time.Hour, settings.Quarantine)
	assert.Equal(t, defaults.PoolRoot, settings.PoolRoot)
	assert.Equal(t, defaults.RustupPath, settings.RustupPath)
}

func TestLoader_RejectsBadQuarantine(t *testing.T) {
	for _, quarantine := range []string{"soon", "-5m"} {
		path := filepath.Join(t.TempDir(), "depot.yaml")
		require.NoError(t, os.WriteFile(path, []byte("quarantine: \""+quarantine+"\"\n"), 0o644))

		loader := config.NewLoaderAt(path, newTestLogger(t))

		_, err := loader.Load()
		assert.Error(t, err, "quarantine %q", quarantine)
	}
}

func TestLoader_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "depot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("poolRoot: [\n"), 0o644))

	loader := config.NewLoaderAt(path, newTestLogger(t))

	_, err := loader.Load()
	require.Error(t, err)
}
