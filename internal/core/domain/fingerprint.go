// Package domain contains the core value types of the toolchain pool.
package domain

import (
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint is the identity key of a pool entry, derived from a
// toolchain's version and component set. Entries with equal fingerprints
// are interchangeable installations.
type Fingerprint string

// fingerprintAlphabet is the base-32 alphabet used to encode hash words.
// It drops 'g', 'i', 'l' and 'o' to avoid lookalike characters in paths.
const fingerprintAlphabet = "0123456789abcdefhjkmnqprstuvwxyz"

// fingerprintWordLen is the number of base-32 digits needed for 64 bits.
const fingerprintWordLen = 13

// DeriveFingerprint computes the fingerprint for a toolchain identified
// by its concrete version and component set. The version and the sorted,
// deduplicated component list are hashed independently so that pool
// listings keep the two identities visually distinct.
func DeriveFingerprint(version string, components []string) Fingerprint {
	verSum := xxhash.Sum64String(strings.TrimSpace(version))

	sorted := slices.Clone(components)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	h := xxhash.New()
	for _, comp := range sorted {
		_, _ = h.WriteString(comp)
		_, _ = h.Write([]byte{0})
	}

	return Fingerprint(encodeHashWord(verSum) + "-" + encodeHashWord(h.Sum64()))
}

// encodeHashWord renders a 64-bit sum as a fixed-width base-32 word.
func encodeHashWord(sum uint64) string {
	var buf [fingerprintWordLen]byte
	for i := fingerprintWordLen - 1; i >= 0; i-- {
		buf[i] = fingerprintAlphabet[sum&31]
		sum >>= 5
	}
	return string(buf[:])
}

// String returns the fingerprint as a plain string.
func (f Fingerprint) String() string {
	return string(f)
}

// Valid reports whether f has the shape of a derived fingerprint: two
// fixed-width base-32 words joined by a dash. The pool store uses this to
// ignore foreign directories that ended up under the pool root.
func (f Fingerprint) Valid() bool {
	if len(f) != 2*fingerprintWordLen+1 {
		return false
	}
	if f[fingerprintWordLen] != '-' {
		return false
	}
	for i, c := range []byte(f) {
		if i == fingerprintWordLen {
			continue
		}
		if !strings.ContainsRune(fingerprintAlphabet, rune(c)) {
			return false
		}
	}
	return true
}
