package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

var (
	// ErrEntryNotFound is returned when a fingerprint has no pool entry.
	ErrEntryNotFound = zerr.New("pool entry not found")

	// ErrChannelNotFound is returned when a channel has no link in the proxy root.
	ErrChannelNotFound = zerr.New("channel not found")

	// ErrInvalidChannel is returned for channel names that are not a single path component.
	ErrInvalidChannel = zerr.New("invalid channel name")

	// ErrInstallFailed is returned when the external installer fails to materialize a toolchain.
	ErrInstallFailed = zerr.New("toolchain install failed")

	// ErrResolveFailed is returned when a spec cannot be resolved to a concrete toolchain.
	ErrResolveFailed = zerr.New("toolchain resolution failed")

	// ErrPublishFailed is returned when a staging directory cannot be moved into the pool.
	ErrPublishFailed = zerr.New("pool publish failed")

	// ErrRepointFailed is returned when a channel link cannot be atomically replaced.
	ErrRepointFailed = zerr.New("channel repoint failed")

	// ErrRemoveFailed is returned when a pool entry cannot be deleted.
	ErrRemoveFailed = zerr.New("pool entry removal failed")
)

// ValidateChannelName rejects names that cannot be a single path
// component under the proxy root, and names containing the reserved
// in-flight infix. Everything that passes maps to exactly one link file
// that channel enumeration will report.
func ValidateChannelName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return zerr.With(ErrInvalidChannel, "channel", name)
	}
	if strings.Contains(name, InFlightInfix) {
		return zerr.With(ErrInvalidChannel, "channel", name)
	}
	return nil
}
