// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/depot/internal/adapters/config"
	_ "go.trai.ch/depot/internal/adapters/logger"
	_ "go.trai.ch/depot/internal/adapters/pool"
	_ "go.trai.ch/depot/internal/adapters/proxy"
	_ "go.trai.ch/depot/internal/adapters/rustup"
	_ "go.trai.ch/depot/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/depot/internal/app"
	_ "go.trai.ch/depot/internal/engine/collector"
	_ "go.trai.ch/depot/internal/engine/transaction"
)
