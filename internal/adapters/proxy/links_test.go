package proxy_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/depot/internal/adapters/proxy"
	"go.trai.ch/depot/internal/core/domain"
)

func newTestLinks(t *testing.T) (*proxy.Links, string) {
	t.Helper()
	tmp := t.TempDir()

	links, err := proxy.NewLinks(filepath.Join(tmp, "toolchains"))
	require.NoError(t, err)
	return links, tmp
}

func makeEntry(t *testing.T, tmp, version string) domain.PoolEntry {
	t.Helper()
	fp := domain.DeriveFingerprint(version, nil)
	path := filepath.Join(tmp, "pool", fp.String())
	require.NoError(t, os.MkdirAll(path, 0o750))

	info, err := os.Stat(path)
	require.NoError(t, err)
	return domain.PoolEntry{Fingerprint: fp, Path: path, PublishedAt: info.ModTime()}
}

func TestLinks_SetAndResolve(t *testing.T) {
	links, tmp := newTestLinks(t)
	entry := makeEntry(t, tmp, "1.80.0")

	require.NoError(t, links.Set("stable", entry))

	got, err := links.Resolve("stable")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entry.Fingerprint, got.Fingerprint)
	assert.Equal(t, entry.Path, got.Path)
}

func TestLinks_SetRepoints(t *testing.T) {
	links, tmp := newTestLinks(t)
	old := makeEntry(t, tmp, "1.80.0")
	next := makeEntry(t, tmp, "1.81.0")

	require.NoError(t, links.Set("stable", old))
	require.NoError(t, links.Set("stable", next))

	got, err := links.Resolve("stable")
	require.NoError(t, err)
	assert.Equal(t, next.Fingerprint, got.Fingerprint)

	// The old entry stays on disk until the collector reclaims it.
	_, statErr := os.Stat(old.Path)
	assert.NoError(t, statErr)
}

func TestLinks_ResolveUnknownChannel(t *testing.T) {
	links, _ := newTestLinks(t)

	_, err := links.Resolve("nightly")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrChannelNotFound))
}

func TestLinks_ResolveDanglingLink(t *testing.T) {
	links, tmp := newTestLinks(t)
	entry := makeEntry(t, tmp, "1.80.0")

	require.NoError(t, links.Set("stable", entry))
	require.NoError(t, os.RemoveAll(entry.Path))

	_, err := links.Resolve("stable")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEntryNotFound))
}

func TestLinks_Remove(t *testing.T) {
	links, tmp := newTestLinks(t)
	entry := makeEntry(t, tmp, "1.80.0")

	require.NoError(t, links.Set("stable", entry))
	require.NoError(t, links.Remove("stable"))

	_, err := links.Resolve("stable")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrChannelNotFound))

	err = links.Remove("stable")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrChannelNotFound))
}

func TestLinks_RejectsInvalidChannelNames(t *testing.T) {
	links, tmp := newTestLinks(t)
	entry := makeEntry(t, tmp, "1.80.0")

	for _, name := range []string{"", ".", "..", "a/b", `a\b`, "nightly.in-flight-2024"} {
		assert.Error(t, links.Set(name, entry), "name %q", name)

		_, err := links.Resolve(name)
		assert.Error(t, err, "name %q", name)

		assert.Error(t, links.Remove(name), "name %q", name)
	}
}

func TestLinks_EveryLinkedChannelIsListed(t *testing.T) {
	links, tmp := newTestLinks(t)
	entry := makeEntry(t, tmp, "1.80.0")

	// Dots are fine in channel names; only the in-flight infix is
	// reserved. Anything Set accepts must show up in List, otherwise the
	// collector would reclaim its entry.
	names := []string{"stable", "nightly.2024", "my.channel"}
	for _, name := range names {
		require.NoError(t, links.Set(name, entry))
	}

	channels, err := links.List()
	require.NoError(t, err)
	for _, name := range names {
		assert.Contains(t, channels, name)
	}
}

func TestLinks_List(t *testing.T) {
	links, tmp := newTestLinks(t)
	stable := makeEntry(t, tmp, "1.80.0")
	beta := makeEntry(t, tmp, "1.81.0-beta.1")

	require.NoError(t, links.Set("stable", stable))
	require.NoError(t, links.Set("beta", beta))

	channels, err := links.List()
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.Fingerprint{
		"stable": stable.Fingerprint,
		"beta":   beta.Fingerprint,
	}, channels)
}

func TestLinks_ListSkipsStrays(t *testing.T) {
	links, tmp := newTestLinks(t)
	entry := makeEntry(t, tmp, "1.80.0")
	root := filepath.Join(tmp, "toolchains")

	require.NoError(t, links.Set("stable", entry))

	// A leftover in-flight link and a plain file must not show up.
	require.NoError(t, os.Symlink(entry.Path, filepath.Join(root, "beta.in-flight-1234")))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))

	channels, err := links.List()
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.Fingerprint{"stable": entry.Fingerprint}, channels)
}
