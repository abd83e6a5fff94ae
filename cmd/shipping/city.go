package shipping

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klytics/pricekit/internal/config"
	"github.com/klytics/pricekit/internal/dellin"
	"github.com/klytics/pricekit/internal/output"
)

func newCityCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "city <name>",
		Short: "Look up a city's KLADR code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			appkey, err := config.GetDellinAppkey()
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			client := dellin.NewClient(appkey, cfg.Dellin.BaseURL)
			city, err := client.FindCity(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonFlag {
				return output.NewWriter().WriteJSON(city)
			}

			fmt.Printf("%s\n  code: %s\n", city.Name, city.Code)
			return nil
		},
	}
}
