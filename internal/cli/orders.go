package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neyron357-boop/spares/internal/orders"
)

func intakeInput(carMake, model, year, vin string, parts []string) orders.IntakeInput {
	return orders.IntakeInput{
		Make:      carMake,
		Model:     model,
		Year:      year,
		VIN:       vin,
		PartNames: parts,
	}
}

// NewOrdersCommand groups the repair-order subcommands.
func NewOrdersCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Manage repair orders",
	}
	cmd.AddCommand(newOrdersAddCommand(opts))
	cmd.AddCommand(newOrdersListCommand(opts))
	cmd.AddCommand(newOrdersShowCommand(opts))
	cmd.AddCommand(newOrdersDeleteCommand(opts))
	cmd.AddCommand(newOrdersImportCommand(opts))
	return cmd
}

func newOrdersAddCommand(opts *RootOptions) *cobra.Command {
	var (
		carMake string
		model   string
		year    string
		vin     string
		parts   []string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Open a new repair order",
		Example: `  spares orders add --make TOYOTA --model CAMRY --year 2019 \
      --part "front bumper" --part hood`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			car, created, err := app.orders.Intake(cmd.Context(), intakeInput(carMake, model, year, vin, parts))
			if err != nil {
				return WrapExitError(ExitFailure, "intake failed", err)
			}

			f := newFormatter(opts, cmd.OutOrStdout())
			return f.Success(
				map[string]any{"car": car, "parts": created},
				fmt.Sprintf("Created order %s (%s %s) with %d part(s).\n", car.ID, car.Make, car.Model, len(created)),
			)
		},
	}
	cmd.Flags().StringVar(&carMake, "make", "", "vehicle make (required)")
	cmd.Flags().StringVar(&model, "model", "", "vehicle model (required)")
	cmd.Flags().StringVar(&year, "year", "", "vehicle year")
	cmd.Flags().StringVar(&vin, "vin", "", "vehicle VIN")
	cmd.Flags().StringArrayVar(&parts, "part", nil, "part to source (repeatable)")
	cmd.MarkFlagRequired("make")
	cmd.MarkFlagRequired("model")
	return cmd
}

func newOrdersListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List orders, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			summaries, err := app.orders.Overview(cmd.Context())
			if err != nil {
				return WrapExitError(ExitFailure, "listing orders", err)
			}

			f := newFormatter(opts, cmd.OutOrStdout())
			return f.Success(summaries, renderOverview(summaries))
		},
	}
}

func newOrdersShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <car-id>",
		Short: "Show one order with its parts and offer counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			detail, err := app.orders.Detail(cmd.Context(), args[0])
			if err != nil {
				return WrapExitError(ExitFailure, "loading order", err)
			}
			if detail == nil {
				return NewExitError(ExitFailure, fmt.Sprintf("order not found: %s", args[0]))
			}

			f := newFormatter(opts, cmd.OutOrStdout())
			return f.Success(detail, renderDetail(detail))
		},
	}
}

func newOrdersDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <car-id>",
		Short: "Delete an order, its parts and their offers",
		Long: `Delete removes the car and everything hanging off it: every part of
the order and every offer collected for those parts. The supplier
directory is never touched by a delete.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.store.DeleteCar(cmd.Context(), args[0]); err != nil {
				return WrapExitError(ExitFailure, "deleting order", err)
			}

			f := newFormatter(opts, cmd.OutOrStdout())
			return f.Success(map[string]string{"deleted": args[0]},
				fmt.Sprintf("Deleted order %s.\n", args[0]))
		},
	}
}

func newOrdersImportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <sheet.yaml>",
		Short: "Import a YAML order sheet",
		Long: `Import reads a YAML sheet of orders, validates it against the sheet
schema, and creates one order per entry. Validation runs before any
write: a sheet that fails the schema imports nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheet, err := LoadOrderSheet(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "loading sheet", err)
			}

			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			f := newFormatter(opts, cmd.OutOrStdout())
			imported := []map[string]any{}
			for i, in := range sheet.IntakeInputs() {
				car, parts, err := app.orders.Intake(cmd.Context(), in)
				if err != nil {
					return WrapExitError(ExitFailure, fmt.Sprintf("importing order %d", i+1), err)
				}
				f.VerboseLog("imported %s %s as %s", car.Make, car.Model, car.ID)
				imported = append(imported, map[string]any{"car": car, "parts": parts})
			}

			return f.Success(imported, fmt.Sprintf("Imported %d order(s) from %s.\n", len(imported), args[0]))
		},
	}
}
