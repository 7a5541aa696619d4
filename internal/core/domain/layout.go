package domain

import (
	"path/filepath"
	"time"
)

const (
	// AppDirName is the name of the depot data directory.
	AppDirName = "depot"

	// PoolDirName is the name of the pool root under the data directory.
	PoolDirName = "pool"

	// StagingDirName is the name of the staging area. It must live on the
	// same volume as the pool root so publish stays a single rename.
	StagingDirName = "staging"

	// ProxyDirName is the name of the proxy root holding channel links.
	ProxyDirName = "toolchains"

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "depot.yaml"

	// InFlightInfix marks the scratch links a repoint creates next to the
	// channel links before renaming them into place. Channel names must
	// never contain it, otherwise a live channel could be mistaken for a
	// leftover scratch link.
	InFlightInfix = ".in-flight-"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// DefaultQuarantine is how long a freshly published pool entry is
	// protected from collection. It must comfortably exceed the window
	// between a transaction's publish and repoint steps.
	DefaultQuarantine = 10 * time.Minute
)

// Settings holds the resolved runtime configuration.
type Settings struct {
	PoolRoot    string
	StagingRoot string
	ProxyRoot   string
	Quarantine  time.Duration

	// RustupPath is the rustup binary driven by the installer adapter.
	RustupPath string

	// ManifestBaseURL is where channel manifests are fetched from.
	ManifestBaseURL string
}

// DefaultSettings returns the settings for a given data root.
func DefaultSettings(dataRoot string) *Settings {
	return &Settings{
		PoolRoot:        filepath.Join(dataRoot, PoolDirName),
		StagingRoot:     filepath.Join(dataRoot, StagingDirName),
		ProxyRoot:       filepath.Join(dataRoot, ProxyDirName),
		Quarantine:      DefaultQuarantine,
		RustupPath:      "rustup",
		ManifestBaseURL: "https://static.rust-lang.org/dist",
	}
}
