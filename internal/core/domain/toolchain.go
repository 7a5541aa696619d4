package domain

import "time"

// ToolchainSpec names the toolchain a caller wants: a channel (release
// channel or explicit version, e.g. "stable" or "1.92.0") and an optional
// explicit component set.
type ToolchainSpec struct {
	Channel    string
	Components []string
}

// ResolvedToolchain is the deterministic identity a spec resolves to: the
// concrete version published for the channel plus its component set.
// Resolution is a pure function of the spec (per the manifest snapshot it
// was resolved against), so equal resolutions yield equal fingerprints.
type ResolvedToolchain struct {
	Version    string
	Components []string
}

// Fingerprint derives the pool identity of the resolved toolchain.
func (t ResolvedToolchain) Fingerprint() Fingerprint {
	return DeriveFingerprint(t.Version, t.Components)
}

// PoolEntry is an immutable toolchain installation published in the pool.
// Its contents are never mutated in place; any change produces a new
// fingerprint and a new entry.
type PoolEntry struct {
	Fingerprint Fingerprint

	// Path is the directory holding the installed toolchain files.
	Path string

	// PublishedAt is when the entry appeared in the pool namespace. The
	// collector uses it to quarantine freshly published entries.
	PublishedAt time.Time
}
