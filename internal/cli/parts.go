package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewPartsCommand groups the part subcommands.
func NewPartsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parts",
		Short: "Manage the parts of an order",
	}
	cmd.AddCommand(newPartsAddCommand(opts))
	cmd.AddCommand(newPartsFoundCommand(opts))
	cmd.AddCommand(newPartsDeleteCommand(opts))
	cmd.AddCommand(newPartsOffersCommand(opts))
	return cmd
}

func newPartsAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <car-id> <name>",
		Short: "Add a part to an existing order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			part, err := app.orders.AddPart(cmd.Context(), args[0], args[1])
			if err != nil {
				return WrapExitError(ExitFailure, "adding part", err)
			}

			f := newFormatter(opts, cmd.OutOrStdout())
			return f.Success(part, fmt.Sprintf("Added part %s (%s).\n", part.ID, part.Name))
		},
	}
}

func newPartsFoundCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "found <part-id>",
		Short: "Mark a part as found",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.orders.MarkFound(cmd.Context(), args[0]); err != nil {
				return WrapExitError(ExitFailure, "marking part found", err)
			}

			f := newFormatter(opts, cmd.OutOrStdout())
			return f.Success(map[string]string{"found": args[0]},
				fmt.Sprintf("Marked part %s as found.\n", args[0]))
		},
	}
}

func newPartsDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <part-id>",
		Short: "Delete a part and its offers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.store.DeletePart(cmd.Context(), args[0]); err != nil {
				return WrapExitError(ExitFailure, "deleting part", err)
			}

			f := newFormatter(opts, cmd.OutOrStdout())
			return f.Success(map[string]string{"deleted": args[0]},
				fmt.Sprintf("Deleted part %s.\n", args[0]))
		},
	}
}

func newPartsOffersCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "offers <part-id>",
		Short: "Show a part's quote history, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			offers, err := app.orders.PartOffers(cmd.Context(), args[0])
			if err != nil {
				return WrapExitError(ExitFailure, "listing offers", err)
			}

			f := newFormatter(opts, cmd.OutOrStdout())
			return f.Success(offers, renderOffers(offers))
		},
	}
}
