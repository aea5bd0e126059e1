package cli

import (
	"github.com/spf13/cobra"

	"github.com/andreyvit/bookdb"
)

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var payload bookdb.BookPayload

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace the fields of a book",
		Long: `Replace title, author, summary and store of an existing book.

All four fields are overwritten; an omitted flag clears its field.

Example:
  bookdb update 1 --title "Dune (rev)" --author Herbert --summary "..." --store S1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := bookdb.ValidatePayload(payload); err != nil {
				return err
			}
			return withService(cmd, rootOpts, func(svc *bookdb.Service) error {
				book, err := svc.UpdateBook(id, payload)
				if err != nil {
					return err
				}
				return printBook(cmd.OutOrStdout(), rootOpts.Format, book)
			})
		},
	}
	addPayloadFlags(cmd, &payload)
	return cmd
}
