package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <channel>",
		Short: "Remove a channel link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Remove(cmd.Context(), args[0])
		},
	}
}
