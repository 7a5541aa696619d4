package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List channels and pool entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := c.app.Status()
			if err != nil {
				return err
			}

			names := make([]string, 0, len(status.Channels))
			for name := range status.Channels {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", name, status.Channels[name])
			}

			referenced := make(map[string]bool, len(status.Channels))
			for _, fp := range status.Channels {
				referenced[fp.String()] = true
			}
			for _, entry := range status.Entries {
				if !referenced[entry.Fingerprint.String()] {
					fmt.Fprintf(cmd.OutOrStdout(), "(unreferenced) %s\n", entry.Fingerprint)
				}
			}
			return nil
		},
	}
}
