// Package rustup shells out to rustup for toolchain installation and
// reads the metadata files rustup leaves inside an installed toolchain.
package rustup

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"go.trai.ch/zerr"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
)

// Installer installs toolchains by running rustup against a throwaway
// RUSTUP_HOME and moving the result into the destination directory.
type Installer struct {
	rustupPath string
}

// NewInstaller creates an installer that invokes the rustup binary at
// rustupPath.
func NewInstaller(rustupPath string) *Installer {
	return &Installer{rustupPath: rustupPath}
}

// Install populates destDir with the given toolchain. destDir must
// exist and be empty; on failure its contents are undefined and the
// caller discards it.
func (i *Installer) Install(ctx context.Context, toolchain domain.ResolvedToolchain, destDir string) error {
	// A private home keeps the user's rustup state untouched and makes
	// the installed toolchain directory easy to find afterwards.
	home, err := os.MkdirTemp(filepath.Dir(destDir), "rustup-home-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create rustup home")
	}
	defer os.RemoveAll(home)

	args := []string{"toolchain", "install", toolchain.Version, "--profile", "minimal", "--no-self-update"}
	for _, comp := range toolchain.Components {
		args = append(args, "--component", comp)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, i.rustupPath, args...)
	cmd.Env = append(os.Environ(), "RUSTUP_HOME="+home)
	cmd.Stderr = &stderr
	if v, ok := ports.VertexFromContext(ctx); ok {
		cmd.Stdout = v.Stdout()
		cmd.Stderr = io.MultiWriter(&stderr, v.Stderr())
	}

	if err := cmd.Run(); err != nil {
		return zerr.With(zerr.With(errors.Join(domain.ErrInstallFailed, err),
			"version", toolchain.Version),
			"stderr", stderr.String(),
		)
	}

	installed, err := installedToolchainDir(home)
	if err != nil {
		return err
	}

	if err := os.Rename(installed, destDir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to move installed toolchain"), "version", toolchain.Version)
	}
	return nil
}

// installedToolchainDir locates the single toolchain rustup installed
// under the private home.
func installedToolchainDir(home string) (string, error) {
	toolchains := filepath.Join(home, "toolchains")

	dirents, err := os.ReadDir(toolchains)
	if err != nil {
		return "", zerr.Wrap(err, "failed to read installed toolchains")
	}

	var dirs []string
	for _, de := range dirents {
		if de.IsDir() {
			dirs = append(dirs, filepath.Join(toolchains, de.Name()))
		}
	}
	if len(dirs) != 1 {
		return "", zerr.With(zerr.New("expected exactly one installed toolchain"), "found", len(dirs))
	}
	return dirs[0], nil
}
