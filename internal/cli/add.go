package cli

import (
	"github.com/spf13/cobra"

	"github.com/andreyvit/bookdb"
)

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	var payload bookdb.BookPayload

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new book",
		Long: `Add a new book and print it, including the assigned id.

Example:
  bookdb add --title Dune --author Herbert --summary "..." --store S1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bookdb.ValidatePayload(payload); err != nil {
				return err
			}
			return withService(cmd, rootOpts, func(svc *bookdb.Service) error {
				book := svc.AddBook(payload)
				return printBook(cmd.OutOrStdout(), rootOpts.Format, book)
			})
		},
	}
	addPayloadFlags(cmd, &payload)
	return cmd
}
