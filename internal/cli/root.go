package cli

import (
	"github.com/spf13/cobra"

	"github.com/jwhyun/tripnote/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Trips  service.TripService
	Editor service.EditorService
	Cities service.CityService
	UserID int64
}

// NewRootCmd creates the top-level "tripnote" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "tripnote",
		Short: "Plan trips against the Trip Service",
	}

	root.AddCommand(
		newTripCmd(app),
		newCityCmd(app),
	)

	return root
}
