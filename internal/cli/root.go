package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/andreyvit/bookdb"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	DBPath     string
	Backend    string
	Verbose    bool
	Format     string // "json" | "text"

	mmapSize int
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

const defaultDBPath = "books.db"

// NewRootCommand creates the root command for the bookdb CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "bookdb",
		Short: "bookdb - a persistent book store",
		Long: `A persistent book store.

Each invocation opens the store, runs one operation and closes it again,
so books and the id counter survive between runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd, opts); err != nil {
				return err
			}
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if _, err := bookdb.ParseBackend(opts.Backend); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", defaultDBPath, "database file")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", string(bookdb.DefaultBackend), "storage backend (bolt|sqlite)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))

	return cmd
}

// withService opens the store, runs f and closes the store.
func withService(cmd *cobra.Command, opts *RootOptions, f func(svc *bookdb.Service) error) error {
	backend, err := bookdb.ParseBackend(opts.Backend)
	if err != nil {
		return err
	}
	if backend == bookdb.BackendMemory {
		return fmt.Errorf("backend %q does not persist between runs", backend)
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	db, err := bookdb.Open(opts.DBPath, bookdb.Options{
		Backend:  backend,
		Logger:   logger,
		Verbose:  opts.Verbose,
		MmapSize: opts.mmapSize,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	return f(bookdb.NewService(db, bookdb.ServiceOptions{}))
}
