// Package config provides the configuration loader for depot.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
)

// Loader implements ports.ConfigLoader using an optional YAML file
// overlaid on XDG-derived defaults.
type Loader struct {
	path string
	log  ports.Logger
}

// NewLoader creates a loader reading the default configuration path.
func NewLoader(log ports.Logger) *Loader {
	return NewLoaderAt(filepath.Join(xdg.ConfigHome, domain.AppDirName, domain.ConfigFileName), log)
}

// NewLoaderAt creates a loader reading the configuration file at path.
func NewLoaderAt(path string, log ports.Logger) *Loader {
	return &Loader{path: filepath.Clean(path), log: log}
}

// Load returns the effective settings. A missing configuration file is
// not an error; the defaults apply.
func (l *Loader) Load() (*domain.Settings, error) {
	settings := domain.DefaultSettings(filepath.Join(xdg.DataHome, domain.AppDirName))

	data, err := os.ReadFile(l.path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", l.path)
	}

	if err := overlay(settings, file); err != nil {
		return nil, zerr.With(err, "path", l.path)
	}

	l.log.Info("loaded configuration from " + l.path)
	return settings, nil
}

func overlay(settings *domain.Settings, file File) error {
	if file.PoolRoot != "" {
		settings.PoolRoot = filepath.Clean(file.PoolRoot)
	}
	if file.StagingRoot != "" {
		settings.StagingRoot = filepath.Clean(file.StagingRoot)
	}
	if file.ProxyRoot != "" {
		settings.ProxyRoot = filepath.Clean(file.ProxyRoot)
	}
	if file.Rustup != "" {
		settings.RustupPath = file.Rustup
	}
	if file.ManifestBaseURL != "" {
		settings.ManifestBaseURL = file.ManifestBaseURL
	}
	if file.Quarantine != "" {
		quarantine, err := time.ParseDuration(file.Quarantine)
		if err != nil {
			return zerr.Wrap(err, "failed to parse quarantine duration")
		}
		if quarantine < 0 {
			return zerr.With(zerr.New("quarantine duration must not be negative"), "quarantine", file.Quarantine)
		}
		settings.Quarantine = quarantine
	}
	return nil
}
