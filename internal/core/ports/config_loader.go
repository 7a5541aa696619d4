package ports

import "go.trai.ch/depot/internal/core/domain"

// ConfigLoader resolves the runtime settings: defaults overlaid with the
// user's configuration file, if any.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	Load() (*domain.Settings, error)
}
