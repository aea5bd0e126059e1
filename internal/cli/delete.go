package cli

import (
	"github.com/spf13/cobra"

	"github.com/andreyvit/bookdb"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a book and print what was deleted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withService(cmd, rootOpts, func(svc *bookdb.Service) error {
				book, err := svc.DeleteBook(id)
				if err != nil {
					return err
				}
				return printBook(cmd.OutOrStdout(), rootOpts.Format, book)
			})
		},
	}
}
