package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <channel>",
		Short: "Install a toolchain and link the channel to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			components, _ := cmd.Flags().GetStringArray("component")

			entry, err := c.app.Add(cmd.Context(), args[0], source, components)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", args[0], entry.Fingerprint)
			return nil
		},
	}
	cmd.Flags().StringP("source", "s", "", "Resolve from this channel instead of the channel name")
	cmd.Flags().StringArrayP("component", "c", nil, "Additional component to install (repeatable)")
	return cmd
}
