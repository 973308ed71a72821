package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwhyun/tripnote/internal/cli/formatter"
	"github.com/jwhyun/tripnote/internal/domain"
)

func newCityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "city",
		Short: "Browse the city catalog",
	}

	cmd.AddCommand(
		newCityListCmd(app),
		newCityRefreshCmd(app),
	)

	return cmd
}

func newCityListCmd(app *App) *cobra.Command {
	var country string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog cities, optionally for one country",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var cities []domain.City
			var err error
			if country != "" {
				cities, err = app.Cities.CitiesIn(ctx, country)
			} else {
				countries, cErr := app.Cities.Countries(ctx)
				if cErr != nil {
					return cErr
				}
				for _, c := range countries {
					inCountry, lErr := app.Cities.CitiesIn(ctx, c)
					if lErr != nil {
						return lErr
					}
					cities = append(cities, inCountry...)
				}
			}
			if err != nil {
				return err
			}
			if len(cities) == 0 {
				fmt.Println("No cities found.")
				return nil
			}

			rows := make([][]string, 0, len(cities))
			for _, c := range cities {
				rows = append(rows, []string{
					fmt.Sprintf("%d", c.ID),
					c.CityName,
					c.KoName,
					c.KoCountry,
				})
			}
			fmt.Printf("%s\n", formatter.RenderTable([]string{"ID", "CITY", "이름", "국가"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "Filter by country (Korean name)")

	return cmd
}

func newCityRefreshCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Re-fetch the city catalog into the local cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Cities.Refresh(context.Background()); err != nil {
				return err
			}
			fmt.Println("City catalog refreshed.")
			return nil
		},
	}
}
