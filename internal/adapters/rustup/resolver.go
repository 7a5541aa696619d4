package rustup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/zerr"

	"go.trai.ch/depot/internal/core/domain"
)

// manifestMaxBytes caps how much of a channel manifest is read. The
// real manifests are under a megabyte; the cap guards against a
// misbehaving mirror.
const manifestMaxBytes = 32 << 20

// Resolver resolves channel names to concrete versions by fetching the
// channel manifest from a static distribution server.
type Resolver struct {
	baseURL string
	client  *http.Client
}

// NewResolver creates a resolver fetching manifests from baseURL.
func NewResolver(baseURL string) *Resolver {
	return &Resolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type channelManifest struct {
	Pkg map[string]struct {
		Version string `toml:"version"`
	} `toml:"pkg"`
}

// Resolve fetches the manifest for the spec's channel and returns the
// concrete toolchain it currently designates.
func (r *Resolver) Resolve(ctx context.Context, spec domain.ToolchainSpec) (domain.ResolvedToolchain, error) {
	if err := domain.ValidateChannelName(spec.Channel); err != nil {
		return domain.ResolvedToolchain{}, err
	}

	url := fmt.Sprintf("%s/channel-rust-%s.toml", r.baseURL, spec.Channel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.ResolvedToolchain{}, zerr.Wrap(err, "failed to build manifest request")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return domain.ResolvedToolchain{}, zerr.With(errors.Join(domain.ErrResolveFailed, err), "channel", spec.Channel)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ResolvedToolchain{}, zerr.With(zerr.With(domain.ErrResolveFailed,
			"channel", spec.Channel),
			"status", resp.Status,
		)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, manifestMaxBytes))
	if err != nil {
		return domain.ResolvedToolchain{}, zerr.With(errors.Join(domain.ErrResolveFailed, err), "channel", spec.Channel)
	}

	var manifest channelManifest
	if err := toml.Unmarshal(body, &manifest); err != nil {
		return domain.ResolvedToolchain{}, zerr.With(zerr.Wrap(err, "failed to parse channel manifest"), "channel", spec.Channel)
	}

	version := versionFromManifest(manifest)
	if version == "" {
		return domain.ResolvedToolchain{}, zerr.With(zerr.With(domain.ErrResolveFailed,
			"channel", spec.Channel),
			"reason", "manifest has no rust version",
		)
	}

	return domain.ResolvedToolchain{
		Version:    version,
		Components: spec.Components,
	}, nil
}

// versionFromManifest extracts the bare version number. Manifests
// carry it as "1.80.1 (3f5fd8dd4 2024-08-06)".
func versionFromManifest(m channelManifest) string {
	fields := strings.Fields(m.Pkg["rust"].Version)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
