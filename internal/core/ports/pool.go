// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/depot/internal/core/domain"

// PoolStore is durable storage of immutable toolchain installations keyed
// by fingerprint. All mutation of the pool namespace goes through atomic
// rename-into-place or unlink; published entries are never edited.
//
//go:generate go run go.uber.org/mock/mockgen -source=pool.go -destination=mocks/mock_pool.go -package=mocks
type PoolStore interface {
	// Lookup returns the entry for the fingerprint, or nil if absent.
	// A miss that races a concurrent publish is acceptable; callers
	// re-verify through Publish's idempotence.
	Lookup(fp domain.Fingerprint) (*domain.PoolEntry, error)

	// Stage creates a fresh, process-private staging directory on the
	// pool's volume and returns its path.
	Stage(fp domain.Fingerprint) (string, error)

	// Publish atomically moves a fully populated staging directory into
	// the pool under the fingerprint. If a concurrent publisher won the
	// race, the staging directory is discarded and the existing entry is
	// returned; concurrent installs of one toolchain are idempotent.
	Publish(stagingPath string, fp domain.Fingerprint) (*domain.PoolEntry, error)

	// DiscardStaging removes an abandoned staging directory.
	DiscardStaging(stagingPath string) error

	// Remove deletes an entry. Callers must have established that the
	// entry is unreferenced; the collector owns that protocol.
	Remove(fp domain.Fingerprint) error

	// List enumerates all published entries.
	List() ([]domain.PoolEntry, error)
}
