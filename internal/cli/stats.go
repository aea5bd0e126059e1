package cli

import (
	"github.com/spf13/cobra"

	"github.com/andreyvit/bookdb"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print store statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, rootOpts, func(svc *bookdb.Service) error {
				return printStats(cmd.OutOrStdout(), rootOpts.Format, svc.DB().Backend(), svc.DB().Stats())
			})
		},
	}
}
