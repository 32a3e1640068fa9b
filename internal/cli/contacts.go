package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewContactsCommand groups the supplier-directory subcommands.
func NewContactsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Browse the supplier directory",
	}
	cmd.AddCommand(newContactsListCommand(opts))
	cmd.AddCommand(newContactsDeleteCommand(opts))
	cmd.AddCommand(newContactsMediaCommand(opts))
	return cmd
}

func newContactsListCommand(opts *RootOptions) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts, most recently used first",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			contacts, err := app.directory.Search(cmd.Context(), query)
			if err != nil {
				return WrapExitError(ExitFailure, "listing contacts", err)
			}

			f := newFormatter(opts, cmd.OutOrStdout())
			return f.Success(contacts, renderContacts(contacts))
		},
	}
	cmd.Flags().StringVar(&query, "search", "", "filter by name, phone, make or model")
	return cmd
}

func newContactsDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <phone>",
		Short: "Remove a contact from the directory",
		Long: `Delete is the only way a directory entry disappears; deleting cars,
parts or offers never removes contacts. The phone argument accepts any
formatting, matching is on digits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.directory.Delete(cmd.Context(), args[0]); err != nil {
				return WrapExitError(ExitFailure, "deleting contact", err)
			}

			f := newFormatter(opts, cmd.OutOrStdout())
			return f.Success(map[string]string{"deleted": args[0]},
				fmt.Sprintf("Deleted contact %s.\n", args[0]))
		},
	}
}

func newContactsMediaCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Manage a contact's business-card gallery",
	}

	attach := &cobra.Command{
		Use:   "add <phone> <photo>...",
		Short: "Attach photos to a contact",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.directory.AttachMedia(cmd.Context(), args[0], args[1:]); err != nil {
				return WrapExitError(ExitFailure, "attaching media", err)
			}

			f := newFormatter(opts, cmd.OutOrStdout())
			return f.Success(map[string]any{"phone": args[0], "added": len(args) - 1},
				fmt.Sprintf("Attached %d photo(s).\n", len(args)-1))
		},
	}

	var index int
	remove := &cobra.Command{
		Use:   "remove <phone>",
		Short: "Remove one photo from a contact by position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.directory.RemoveMedia(cmd.Context(), args[0], index); err != nil {
				return WrapExitError(ExitFailure, "removing media", err)
			}

			f := newFormatter(opts, cmd.OutOrStdout())
			return f.Success(map[string]any{"phone": args[0], "removed": index},
				fmt.Sprintf("Removed photo %d.\n", index))
		},
	}
	remove.Flags().IntVar(&index, "index", 0, "photo position to remove")

	cmd.AddCommand(attach)
	cmd.AddCommand(remove)
	return cmd
}
