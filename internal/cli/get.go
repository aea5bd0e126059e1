package cli

import (
	"github.com/spf13/cobra"

	"github.com/andreyvit/bookdb"
)

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withService(cmd, rootOpts, func(svc *bookdb.Service) error {
				book, err := svc.GetBook(id)
				if err != nil {
					return err
				}
				return printBook(cmd.OutOrStdout(), rootOpts.Format, book)
			})
		},
	}
}
