package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andreyvit/bookdb"
)

func addPayloadFlags(cmd *cobra.Command, p *bookdb.BookPayload) {
	cmd.Flags().StringVar(&p.Title, "title", "", "book title")
	cmd.Flags().StringVar(&p.Author, "author", "", "book author")
	cmd.Flags().StringVar(&p.Summary, "summary", "", "book summary")
	cmd.Flags().StringVar(&p.StoreName, "store", "", "name of the store selling the book")
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid book id %q: must be a non-negative integer", s)
	}
	return id, nil
}
