package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neyron357-boop/spares/internal/directory"
	"github.com/neyron357-boop/spares/internal/orders"
	"github.com/neyron357-boop/spares/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DBPath  string
	Format  string // "json" | "text"
	Verbose bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the spares CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "spares",
		Short: "Offline catalog for vehicle repair orders and supplier contacts",
		Long: `spares manages repair orders, the parts to source for them, supplier
price offers, and the supplier directory those offers derive. Everything
lives in one local database file; there is no server and no account.`,
		SilenceUsage:  true,
		SilenceErrors: true, // main prints errors with the exit code mapping
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "spares.db", "path to the catalog database")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	cmd.AddCommand(NewOrdersCommand(opts))
	cmd.AddCommand(NewPartsCommand(opts))
	cmd.AddCommand(NewOffersCommand(opts))
	cmd.AddCommand(NewContactsCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// app bundles the opened store with the services built on it.
type app struct {
	store     *store.Store
	orders    *orders.Service
	directory *directory.Service
}

// openApp opens the catalog database and wires the services. The caller
// must Close when done.
func openApp(opts *RootOptions) (*app, error) {
	s, err := store.Open(opts.DBPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "cannot open catalog", err)
	}
	return &app{
		store:     s,
		orders:    orders.NewService(s),
		directory: directory.NewService(s),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}
