// Package commands implements the CLI commands for depot.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"go.trai.ch/depot/internal/app"
	"go.trai.ch/depot/internal/build"
)

// CLI represents the command line interface for depot.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "depot",
		Short:         "Manage a pooled store of immutable Rust toolchains",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newAddCmd())
	rootCmd.AddCommand(c.newRmCmd())
	rootCmd.AddCommand(c.newGCCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newIDCmd())
	rootCmd.AddCommand(c.newIDChanCmd())
	rootCmd.AddCommand(c.newNukeCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOut sets the output writer for the root command. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}
