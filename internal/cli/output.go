package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/andreyvit/bookdb"
)

func printBook(w io.Writer, format string, book *bookdb.Book) error {
	if format == "json" {
		return writeJSON(w, book)
	}

	updated := "-"
	if book.IsUpdated() {
		updated = book.Updated().UTC().Format(time.RFC3339Nano)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "id:\t%d\n", book.ID)
	fmt.Fprintf(tw, "title:\t%s\n", book.Title)
	fmt.Fprintf(tw, "author:\t%s\n", book.Author)
	fmt.Fprintf(tw, "summary:\t%s\n", book.Summary)
	fmt.Fprintf(tw, "store:\t%s\n", book.StoreName)
	fmt.Fprintf(tw, "created:\t%s\n", book.Created().UTC().Format(time.RFC3339Nano))
	fmt.Fprintf(tw, "updated:\t%s\n", updated)
	return tw.Flush()
}

type statsOutput struct {
	Backend  bookdb.Backend `json:"backend"`
	LastID   uint64         `json:"last_id"`
	Books    int            `json:"books"`
	DataSize int64          `json:"data_size"`
}

func printStats(w io.Writer, format string, backend bookdb.Backend, stats bookdb.Stats) error {
	out := statsOutput{
		Backend:  backend,
		LastID:   stats.LastID,
		Books:    stats.Books,
		DataSize: stats.DataSize,
	}
	if format == "json" {
		return writeJSON(w, out)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "backend:\t%s\n", out.Backend)
	fmt.Fprintf(tw, "last id:\t%d\n", out.LastID)
	fmt.Fprintf(tw, "books:\t%d\n", out.Books)
	fmt.Fprintf(tw, "data size:\t%d\n", out.DataSize)
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
