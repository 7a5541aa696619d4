package ports

import (
	"context"

	"go.trai.ch/depot/internal/core/domain"
)

// Installer is the external collaborator that materializes toolchain
// files. It must populate destDir completely or fail leaving it unusable;
// the caller deletes destDir on failure either way. The call may take
// arbitrarily long; cancelling ctx abandons the staging directory, it
// never interrupts a publish already in flight.
//
//go:generate go run go.uber.org/mock/mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type Installer interface {
	Install(ctx context.Context, toolchain domain.ResolvedToolchain, destDir string) error
}
