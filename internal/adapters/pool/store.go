// Package pool implements the on-disk store of immutable toolchain
// installations, keyed by fingerprint.
package pool

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/zerr"

	"go.trai.ch/depot/internal/core/domain"
)

// Store keeps one directory per pool entry under root. Entries become
// visible only through a rename from the staging area, which lives on
// the same filesystem so the rename is atomic.
type Store struct {
	root    string
	staging string
}

// NewStore creates a pool store rooted at root, with staging as the
// scratch area for in-flight installations.
func NewStore(root, staging string) (*Store, error) {
	root = filepath.Clean(root)
	staging = filepath.Clean(staging)

	if err := os.MkdirAll(root, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, "failed to create pool root")
	}
	if err := os.MkdirAll(staging, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, "failed to create staging root")
	}

	return &Store{root: root, staging: staging}, nil
}

func (s *Store) entryPath(fp domain.Fingerprint) string {
	return filepath.Join(s.root, fp.String())
}

// Lookup returns the entry for the fingerprint, or nil if the pool has
// no such entry.
func (s *Store) Lookup(fp domain.Fingerprint) (*domain.PoolEntry, error) {
	path := s.entryPath(fp)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to stat pool entry"), "fingerprint", fp.String())
	}
	if !info.IsDir() {
		return nil, zerr.With(zerr.New("pool entry is not a directory"), "fingerprint", fp.String())
	}

	return &domain.PoolEntry{
		Fingerprint: fp,
		Path:        path,
		PublishedAt: info.ModTime(),
	}, nil
}

// Stage creates a fresh scratch directory for an installation destined
// to become the entry for fp. The directory lives in the staging area
// so a later publish is a same-filesystem rename.
func (s *Store) Stage(fp domain.Fingerprint) (string, error) {
	dir, err := os.MkdirTemp(s.staging, fp.String()+"-*")
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create staging directory"), "fingerprint", fp.String())
	}
	return dir, nil
}

// Publish moves a fully populated staging directory into the pool as
// the entry for fp. If another process published the same fingerprint
// first, the staging directory is discarded and the existing entry is
// returned; publish never overwrites.
func (s *Store) Publish(stagingPath string, fp domain.Fingerprint) (*domain.PoolEntry, error) {
	target := s.entryPath(fp)

	renameErr := os.Rename(stagingPath, target)
	if renameErr != nil {
		// Rename refuses to replace a non-empty directory, so any
		// failure may mean a concurrent publisher won the race.
		existing, err := s.Lookup(fp)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if err := os.RemoveAll(stagingPath); err != nil {
				return nil, zerr.Wrap(err, "failed to discard staging after lost publish race")
			}
			return existing, nil
		}
		return nil, zerr.With(zerr.With(errors.Join(domain.ErrPublishFailed, renameErr),
			"fingerprint", fp.String()),
			"staging", stagingPath,
		)
	}

	entry, err := s.Lookup(fp)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, zerr.With(domain.ErrPublishFailed, "fingerprint", fp.String())
	}
	return entry, nil
}

// DiscardStaging removes an abandoned staging directory.
func (s *Store) DiscardStaging(stagingPath string) error {
	cleaned := filepath.Clean(stagingPath)
	if !strings.HasPrefix(cleaned, s.staging+string(filepath.Separator)) {
		return zerr.With(zerr.New("refusing to discard path outside staging root"), "path", stagingPath)
	}
	if err := os.RemoveAll(cleaned); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to discard staging directory"), "path", stagingPath)
	}
	return nil
}

// Remove deletes the entry for fp. The entry directory is first renamed
// into the staging area so the pool never exposes a partially deleted
// entry, then the renamed directory is removed.
func (s *Store) Remove(fp domain.Fingerprint) error {
	path := s.entryPath(fp)

	doomed, err := os.MkdirTemp(s.staging, "reclaim-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create reclaim directory")
	}

	if err := os.Rename(path, filepath.Join(doomed, fp.String())); err != nil {
		_ = os.RemoveAll(doomed)
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(domain.ErrEntryNotFound, "fingerprint", fp.String())
		}
		return zerr.With(errors.Join(domain.ErrRemoveFailed, err), "fingerprint", fp.String())
	}

	if err := os.RemoveAll(doomed); err != nil {
		return zerr.With(errors.Join(domain.ErrRemoveFailed, err), "fingerprint", fp.String())
	}
	return nil
}

// List returns all entries currently in the pool, ordered by
// fingerprint. Stray files and directories whose names are not valid
// fingerprints are ignored.
func (s *Store) List() ([]domain.PoolEntry, error) {
	dirents, err := os.ReadDir(s.root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read pool root")
	}

	entries := make([]domain.PoolEntry, 0, len(dirents))
	for _, de := range dirents {
		fp := domain.Fingerprint(de.Name())
		if !de.IsDir() || !fp.Valid() {
			continue
		}
		info, err := de.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// Entry vanished between readdir and stat.
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, "failed to stat pool entry"), "fingerprint", fp.String())
		}
		entries = append(entries, domain.PoolEntry{
			Fingerprint: fp,
			Path:        filepath.Join(s.root, de.Name()),
			PublishedAt: info.ModTime(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Fingerprint < entries[j].Fingerprint
	})
	return entries, nil
}
