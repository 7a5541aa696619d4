// Package proxy implements the channel directory: one symlink per
// channel name, pointing at a pool entry. Repoints go through a
// temporary link followed by a rename, so a reader never observes a
// missing or half-written link.
package proxy

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"go.trai.ch/depot/internal/core/domain"
)

// Links is a ChannelStore backed by symlinks under a single directory.
type Links struct {
	root string
}

// NewLinks creates the channel store rooted at root.
func NewLinks(root string) (*Links, error) {
	root = filepath.Clean(root)
	if err := os.MkdirAll(root, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, "failed to create channel directory")
	}
	return &Links{root: root}, nil
}

func (l *Links) linkPath(channel string) string {
	return filepath.Join(l.root, channel)
}

// Resolve returns the pool entry the channel currently points at.
func (l *Links) Resolve(channel string) (*domain.PoolEntry, error) {
	if err := domain.ValidateChannelName(channel); err != nil {
		return nil, err
	}

	target, err := os.Readlink(l.linkPath(channel))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrChannelNotFound, "channel", channel)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read channel link"), "channel", channel)
	}

	if !filepath.IsAbs(target) {
		target = filepath.Join(l.root, target)
	}

	fp := domain.Fingerprint(filepath.Base(target))
	if !fp.Valid() {
		return nil, zerr.With(zerr.New("channel link target is not a pool entry"), "channel", channel)
	}

	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Dangling link: the entry was reclaimed out from under it.
			return nil, zerr.With(zerr.With(domain.ErrEntryNotFound, "channel", channel), "fingerprint", fp.String())
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to stat channel target"), "channel", channel)
	}

	return &domain.PoolEntry{
		Fingerprint: fp,
		Path:        target,
		PublishedAt: info.ModTime(),
	}, nil
}

// Set points the channel at the given entry, replacing any previous
// target in a single rename.
func (l *Links) Set(channel string, entry domain.PoolEntry) error {
	if err := domain.ValidateChannelName(channel); err != nil {
		return err
	}

	tmp := l.linkPath(channel + domain.InFlightInfix + fmt.Sprint(os.Getpid()))

	// A stale in-flight link from a crashed run blocks the symlink call.
	if err := os.Remove(tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to clear stale in-flight link"), "channel", channel)
	}

	if err := os.Symlink(entry.Path, tmp); err != nil {
		return zerr.With(errors.Join(domain.ErrRepointFailed, err), "channel", channel)
	}

	if err := os.Rename(tmp, l.linkPath(channel)); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(errors.Join(domain.ErrRepointFailed, err), "channel", channel)
	}
	return nil
}

// Remove deletes the channel link. The pool entry it pointed at is left
// alone; reclaiming unreferenced entries is the collector's job.
func (l *Links) Remove(channel string) error {
	if err := domain.ValidateChannelName(channel); err != nil {
		return err
	}

	if err := os.Remove(l.linkPath(channel)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(domain.ErrChannelNotFound, "channel", channel)
		}
		return zerr.With(zerr.Wrap(err, "failed to remove channel link"), "channel", channel)
	}
	return nil
}

// List returns the channel-to-fingerprint mapping. Leftover in-flight
// links from crashed repoints and entries that are not symlinks to pool
// entries are skipped; valid channel names can never collide with them.
func (l *Links) List() (map[string]domain.Fingerprint, error) {
	dirents, err := os.ReadDir(l.root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read channel directory")
	}

	channels := make(map[string]domain.Fingerprint, len(dirents))
	for _, de := range dirents {
		name := de.Name()
		if strings.Contains(name, domain.InFlightInfix) {
			continue
		}
		if de.Type()&fs.ModeSymlink == 0 {
			continue
		}
		target, err := os.Readlink(l.linkPath(name))
		if err != nil {
			// Link removed between readdir and readlink.
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, "failed to read channel link"), "channel", name)
		}
		fp := domain.Fingerprint(filepath.Base(target))
		if !fp.Valid() {
			continue
		}
		channels[name] = fp
	}
	return channels, nil
}
