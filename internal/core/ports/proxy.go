package ports

import "go.trai.ch/depot/internal/core/domain"

// ChannelStore maintains the proxy root: one mutable link per channel
// name, each resolving to exactly one pool entry. Repoints are atomic; a
// concurrent reader observes either the old target or the new one, never
// a missing or half-written link.
//
//go:generate go run go.uber.org/mock/mockgen -source=proxy.go -destination=mocks/mock_proxy.go -package=mocks
type ChannelStore interface {
	// Resolve returns the pool entry the channel link currently points
	// at. Returns domain.ErrChannelNotFound if the channel has no link.
	Resolve(channel string) (*domain.PoolEntry, error)

	// Set atomically creates or repoints the channel link to the entry.
	// Racing Sets on one channel resolve to whichever rename lands last.
	Set(channel string, entry domain.PoolEntry) error

	// Remove deletes the channel link. The pool entry is left alone;
	// reclaiming it is the collector's concern.
	Remove(channel string) error

	// List maps every linked channel to its target fingerprint.
	List() (map[string]domain.Fingerprint, error)
}
