package pool_test

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/depot/internal/adapters/pool"
	"go.trai.ch/depot/internal/core/domain"
)

func newTestStore(t *testing.T) (*pool.Store, string, string) {
	t.Helper()
	tmp := t.TempDir()
	root := filepath.Join(tmp, "pool")
	staging := filepath.Join(tmp, "staging")

	store, err := pool.NewStore(root, staging)
	require.NoError(t, err)
	return store, root, staging
}

func stageWithMarker(t *testing.T, store *pool.Store, fp domain.Fingerprint, marker string) string {
	t.Helper()
	dir, err := store.Stage(fp)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker"), []byte(marker), 0o644))
	return dir
}

func TestStore_LookupMiss(t *testing.T) {
	store, _, _ := newTestStore(t)

	entry, err := store.Lookup(domain.DeriveFingerprint("1.80.0", nil))
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestStore_PublishAndLookup(t *testing.T) {
	store, root, _ := newTestStore(t)
	fp := domain.DeriveFingerprint("1.80.0", []string{"clippy"})

	dir := stageWithMarker(t, store, fp, "a")

	entry, err := store.Publish(dir, fp)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, fp, entry.Fingerprint)
	assert.Equal(t, filepath.Join(root, fp.String()), entry.Path)

	content, err := os.ReadFile(filepath.Join(entry.Path, "marker"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(content))

	// Staging directory was consumed by the rename.
	_, statErr := os.Stat(dir)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))

	got, err := store.Lookup(fp)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entry.Path, got.Path)
}

func TestStore_PublishLostRaceKeepsFirstEntry(t *testing.T) {
	store, _, _ := newTestStore(t)
	fp := domain.DeriveFingerprint("1.80.0", []string{"clippy"})

	first := stageWithMarker(t, store, fp, "first")
	second := stageWithMarker(t, store, fp, "second")

	won, err := store.Publish(first, fp)
	require.NoError(t, err)

	lost, err := store.Publish(second, fp)
	require.NoError(t, err)
	assert.Equal(t, won.Path, lost.Path)

	// The losing staging directory was discarded.
	_, statErr := os.Stat(second)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))

	content, err := os.ReadFile(filepath.Join(won.Path, "marker"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(content))
}

func TestStore_ConcurrentPublishSameFingerprint(t *testing.T) {
	store, _, _ := newTestStore(t)
	fp := domain.DeriveFingerprint("1.81.0", []string{"rustfmt"})

	const n = 8
	dirs := make([]string, n)
	for i := range dirs {
		dirs[i] = stageWithMarker(t, store, fp, "x")
	}

	paths := make([]string, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			entry, err := store.Publish(dirs[i], fp)
			if err != nil {
				errs[i] = err
				return
			}
			paths[i] = entry.Path
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, paths[0], paths[i])
	}

	entries, err := store.List()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_Remove(t *testing.T) {
	store, _, _ := newTestStore(t)
	fp := domain.DeriveFingerprint("1.80.0", nil)

	dir := stageWithMarker(t, store, fp, "a")
	_, err := store.Publish(dir, fp)
	require.NoError(t, err)

	require.NoError(t, store.Remove(fp))

	entry, err := store.Lookup(fp)
	require.NoError(t, err)
	assert.Nil(t, entry)

	err = store.Remove(fp)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEntryNotFound))
}

func TestStore_DiscardStaging(t *testing.T) {
	store, _, _ := newTestStore(t)
	fp := domain.DeriveFingerprint("1.80.0", nil)

	dir := stageWithMarker(t, store, fp, "a")
	require.NoError(t, store.DiscardStaging(dir))

	_, statErr := os.Stat(dir)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestStore_DiscardStagingRejectsOutsidePath(t *testing.T) {
	store, root, _ := newTestStore(t)

	err := store.DiscardStaging(root)
	require.Error(t, err)

	_, statErr := os.Stat(root)
	assert.NoError(t, statErr)
}

func TestStore_ListIgnoresStrays(t *testing.T) {
	store, root, _ := newTestStore(t)

	fpA := domain.DeriveFingerprint("1.80.0", nil)
	fpB := domain.DeriveFingerprint("1.81.0", []string{"clippy"})
	for _, fp := range []domain.Fingerprint{fpA, fpB} {
		dir := stageWithMarker(t, store, fp, "x")
		_, err := store.Publish(dir, fp)
		require.NoError(t, err)
	}

	// Stray content that must not surface as entries.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "not-a-fingerprint"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "README"), []byte("x"), 0o644))

	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.True(t, e.Fingerprint.Valid())
	}
}
