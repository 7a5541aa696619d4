package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"go.trai.ch/depot/internal/core/domain"
)

func (c *CLI) newIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "id <channel>",
		Short: "Print the identity of the installation a channel points at",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := c.app.Identify(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", resolved.Fingerprint())
			fmt.Fprintf(cmd.OutOrStdout(), "version: %s\n", resolved.Version)
			if len(resolved.Components) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "components: %s\n", strings.Join(resolved.Components, ", "))
			}
			return nil
		},
	}
}

func (c *CLI) newIDChanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "id-chan <channel>",
		Short: "Resolve a channel spec to its pool identity without installing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			components, _ := cmd.Flags().GetStringArray("component")

			fp, resolved, err := c.app.Fingerprint(cmd.Context(), domain.ToolchainSpec{
				Channel:    args[0],
				Components: components,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", fp)
			fmt.Fprintf(cmd.OutOrStdout(), "version: %s\n", resolved.Version)
			return nil
		},
	}
	cmd.Flags().StringArrayP("component", "c", nil, "Component the identity should include (repeatable)")
	return cmd
}
