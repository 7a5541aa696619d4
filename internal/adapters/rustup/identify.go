package rustup

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/zerr"

	"go.trai.ch/depot/internal/core/domain"
)

// Paths rustup writes inside every installed toolchain.
const (
	channelManifestRelPath = "lib/rustlib/multirust-channel-manifest.toml"
	componentsRelPath      = "lib/rustlib/components"
)

// Identifier recovers a toolchain's identity from the metadata files
// rustup leaves inside the installation.
type Identifier struct{}

// NewIdentifier creates an identifier.
func NewIdentifier() *Identifier {
	return &Identifier{}
}

// Identify reads the embedded channel manifest and component list of
// the installation at path.
func (i *Identifier) Identify(path string) (domain.ResolvedToolchain, error) {
	data, err := os.ReadFile(filepath.Join(path, channelManifestRelPath))
	if err != nil {
		return domain.ResolvedToolchain{}, zerr.With(zerr.Wrap(err, "failed to read embedded channel manifest"), "path", path)
	}

	var manifest channelManifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return domain.ResolvedToolchain{}, zerr.With(zerr.Wrap(err, "failed to parse embedded channel manifest"), "path", path)
	}

	version := versionFromManifest(manifest)
	if version == "" {
		return domain.ResolvedToolchain{}, zerr.With(zerr.New("embedded manifest has no rust version"), "path", path)
	}

	components, err := readComponents(filepath.Join(path, componentsRelPath))
	if err != nil {
		return domain.ResolvedToolchain{}, zerr.With(err, "path", path)
	}

	return domain.ResolvedToolchain{
		Version:    version,
		Components: components,
	}, nil
}

func readComponents(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, "failed to read component list")
	}

	var components []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			components = append(components, line)
		}
	}
	return components, nil
}
