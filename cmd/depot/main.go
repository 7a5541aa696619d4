// Package main is the entry point for the depot CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"

	"go.trai.ch/depot/cmd/depot/commands"
	"go.trai.ch/depot/internal/app"
	_ "go.trai.ch/depot/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	cli := commands.New(components.App)

	execErr := cli.Execute(ctx)

	// The telemetry renderer owns the terminal until it is stopped.
	if err := components.Telemetry.Close(); err != nil {
		components.Logger.Error(err)
	}

	if execErr != nil {
		components.Logger.Error(execErr)
		return 1
	}
	return 0
}
