package shipping

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/pricekit/internal/config"
	"github.com/klytics/pricekit/internal/dellin"
	"github.com/klytics/pricekit/internal/output"
)

func newCalcCommand() *cobra.Command {
	var (
		fromCity string
		toCity   string
		weight   float64
		length   float64
		width    float64
		height   float64
		volume   float64
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate delivery cost between two cities",
		Long: `Looks up both cities, then asks the Dellin calculator for the
delivery price and transit time. Dimensions are in centimeters,
weight in kilograms; volume is derived from dimensions when omitted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			if fromCity == "" || toCity == "" {
				return fmt.Errorf("--from and --to are required\n\nExample: pricekit shipping calc --from Yekaterinburg --to Moscow --weight 4104")
			}
			if weight <= 0 {
				return fmt.Errorf("--weight must be a positive number of kilograms")
			}

			appkey, err := config.GetDellinAppkey()
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			client := dellin.NewClient(appkey, cfg.Dellin.BaseURL)
			ctx := cmd.Context()

			from, err := client.FindCity(ctx, fromCity)
			if err != nil {
				return fmt.Errorf("origin city: %w", err)
			}
			to, err := client.FindCity(ctx, toCity)
			if err != nil {
				return fmt.Errorf("destination city: %w", err)
			}

			calc, err := client.Calculate(ctx, dellin.CalculationRequest{
				FromCityCode: from.Code,
				ToCityCode:   to.Code,
				WeightKg:     weight,
				LengthCm:     length,
				WidthCm:      width,
				HeightCm:     height,
				VolumeM3:     volume,
			})
			if err != nil {
				return err
			}

			if jsonFlag {
				return output.NewWriter().WriteJSON(calc)
			}

			ok := color.New(color.FgGreen)
			fmt.Printf("Route: %s -> %s\n", from.Name, to.Name)
			fmt.Printf("Weight: %.0f kg\n", weight)
			ok.Println("Calculation successful")
			fmt.Printf("  Delivery cost: %.2f RUB\n", calc.Price.Delivery)
			fmt.Printf("  Transit time:  %d days\n", calc.Time.Delivery)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromCity, "from", "", "Origin city name (required)")
	cmd.Flags().StringVar(&toCity, "to", "", "Destination city name (required)")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Cargo weight in kg (required)")
	cmd.Flags().Float64Var(&length, "length", 0, "Cargo length in cm")
	cmd.Flags().Float64Var(&width, "width", 0, "Cargo width in cm")
	cmd.Flags().Float64Var(&height, "height", 0, "Cargo height in cm")
	cmd.Flags().Float64Var(&volume, "volume", 0, "Cargo volume in m³ (derived from dimensions when omitted)")

	return cmd
}
