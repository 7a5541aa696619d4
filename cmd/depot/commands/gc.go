package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newGCCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gc",
		Short: "Reclaim pool entries no channel points at",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.app.Collect()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "scanned %d, referenced %d, quarantined %d, reclaimed %d\n",
				report.Scanned, report.Referenced, report.Quarantined, report.Reclaimed)

			if len(report.Failures) > 0 {
				for _, failure := range report.Failures {
					fmt.Fprintf(cmd.ErrOrStderr(), "failed to reclaim %s: %v\n", failure.Fingerprint, failure.Err)
				}
				return zerr.With(zerr.New("some entries could not be reclaimed"), "failed", len(report.Failures))
			}
			return nil
		},
	}
}
