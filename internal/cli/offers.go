package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neyron357-boop/spares/internal/catalog"
)

// NewOffersCommand groups the offer subcommands.
func NewOffersCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offers",
		Short: "Record supplier price offers",
	}
	cmd.AddCommand(newOffersAddCommand(opts))
	return cmd
}

func newOffersAddCommand(opts *RootOptions) *cobra.Command {
	var (
		shop     string
		phone    string
		price    string
		location string
		lat      float64
		lng      float64
		photos   []string
	)
	cmd := &cobra.Command{
		Use:   "add <part-id>",
		Short: "Record an offer and update the supplier directory",
		Long: `Add records a supplier's quote for a part and, in the same
transaction, creates or updates the supplier's directory entry keyed
by the phone number's digits. Either both land or neither does.`,
		Example: `  spares offers add 4f1c... --shop "Al Futtaim" --phone "+971 50 123 4567" \
      --price 450 --location "Deira souq"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			part, err := app.store.GetPart(ctx, args[0])
			if err != nil {
				return WrapExitError(ExitFailure, "loading part", err)
			}
			if part == nil {
				return NewExitError(ExitFailure, fmt.Sprintf("part not found: %s", args[0]))
			}
			car, err := app.store.GetCar(ctx, part.CarID)
			if err != nil {
				return WrapExitError(ExitFailure, "loading car", err)
			}
			if car == nil {
				return NewExitError(ExitFailure, fmt.Sprintf("car not found for part: %s", part.CarID))
			}

			offer := catalog.Offer{
				PartID:       part.ID,
				ShopName:     shop,
				Phone:        phone,
				CostPrice:    price,
				LocationText: location,
				Media:        photos,
			}
			if cmd.Flags().Changed("lat") {
				offer.Lat = &lat
			}
			if cmd.Flags().Changed("lng") {
				offer.Lng = &lng
			}

			saved, err := app.store.SaveOffer(ctx, offer, *car)
			if err != nil {
				return WrapExitError(ExitFailure, "saving offer", err)
			}

			f := newFormatter(opts, cmd.OutOrStdout())
			return f.Success(saved,
				fmt.Sprintf("Recorded offer %s from %s (%s).\n", saved.ID, saved.ShopName, saved.Phone))
		},
	}
	cmd.Flags().StringVar(&shop, "shop", "", "supplier shop name (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "supplier phone number (required)")
	cmd.Flags().StringVar(&price, "price", "", "quoted cost price")
	cmd.Flags().StringVar(&location, "location", "", "free-text location")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude")
	cmd.Flags().StringArrayVar(&photos, "photo", nil, "offer photo reference (repeatable)")
	cmd.MarkFlagRequired("shop")
	cmd.MarkFlagRequired("phone")
	return cmd
}
