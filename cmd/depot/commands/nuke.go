package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newNukeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nuke",
		Short: "Delete the pool, the staging area and all channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				return zerr.New("nuke deletes every installed toolchain and channel, re-run with --force to proceed")
			}
			return c.app.Nuke()
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Confirm deleting everything")
	return cmd
}
