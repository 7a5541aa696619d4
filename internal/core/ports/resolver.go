package ports

import (
	"context"

	"go.trai.ch/depot/internal/core/domain"
)

// Resolver is the external collaborator that turns a requested spec into
// the deterministic identity of a concrete toolchain. For a fixed
// manifest snapshot, Resolve is a pure function of the spec.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type Resolver interface {
	Resolve(ctx context.Context, spec domain.ToolchainSpec) (domain.ResolvedToolchain, error)
}

// Identifier recovers the identity of an installed toolchain from its
// files on disk, independently of how it is linked.
type Identifier interface {
	Identify(path string) (domain.ResolvedToolchain, error)
}
