package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jwhyun/tripnote/internal/cli/formatter"
	"github.com/jwhyun/tripnote/internal/draft"
	"github.com/jwhyun/tripnote/internal/itinerary"
	"github.com/jwhyun/tripnote/internal/reconcile"
	"github.com/jwhyun/tripnote/internal/tripapi"
)

func newTripCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trip",
		Short: "Manage trips",
	}

	cmd.AddCommand(
		newTripListCmd(app),
		newTripShowCmd(app),
		newTripNewCmd(app),
		newTripEditCmd(app),
		newTripRemoveCmd(app),
		newTripDaysCmd(app),
	)

	return cmd
}

func parseTripID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid trip ID %q", arg)
	}
	return id, nil
}

func interactiveTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func newTripListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your trips",
		RunE: func(cmd *cobra.Command, args []string) error {
			trips, err := app.Trips.List(context.Background(), app.UserID)
			if err != nil {
				return err
			}
			if len(trips) == 0 {
				fmt.Println("No trips found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatTripList(trips))
			return nil
		},
	}
}

func newTripShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a trip's itinerary, schedules, and checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tripID, err := parseTripID(args[0])
			if err != nil {
				return err
			}
			snap, err := app.Trips.Show(context.Background(), tripID)
			if err != nil {
				if errors.Is(err, tripapi.ErrNotFound) {
					return fmt.Errorf("trip %d not found", tripID)
				}
				return err
			}
			fmt.Printf("%s\n", formatter.FormatSnapshot(snap))
			return nil
		},
	}
}

func newTripNewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create a trip through the planning wizard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !interactiveTerminal() {
				return fmt.Errorf("trip new needs an interactive terminal")
			}
			ctx := context.Background()

			d := draft.New()
			d.Trip.UserID = app.UserID
			if err := runTripWizard(ctx, app, d, nil); err != nil {
				return err
			}

			tripID, err := app.Trips.Create(ctx, d)
			if err != nil {
				return submitError(err)
			}
			fmt.Printf("Created trip #%d %s\n", tripID, d.Trip.Title)
			return nil
		},
	}
}

func newTripEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a trip through the planning wizard and submit the changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !interactiveTerminal() {
				return fmt.Errorf("trip edit needs an interactive terminal")
			}
			tripID, err := parseTripID(args[0])
			if err != nil {
				return err
			}
			ctx := context.Background()

			d, err := app.Editor.Load(ctx, tripID)
			if err != nil {
				if errors.Is(err, tripapi.ErrNotFound) {
					return fmt.Errorf("trip %d not found", tripID)
				}
				return err
			}

			toggle := func(localID string) error {
				_, err := app.Editor.ToggleChecklist(ctx, localID)
				return err
			}
			if err := runTripWizard(ctx, app, d, toggle); err != nil {
				return err
			}

			if err := app.Editor.Submit(ctx); err != nil {
				return submitError(err)
			}
			fmt.Printf("Saved trip #%d\n", tripID)
			return nil
		},
	}
}

// submitError turns the reconciliation error types into messages that say
// what, if anything, already changed on the server.
func submitError(err error) error {
	var verr *reconcile.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("nothing was saved:\n%s", formatter.FormatProblems(verr.Problems))
	}
	var serr *reconcile.StepError
	if errors.As(err, &serr) {
		if len(serr.Completed) > 0 {
			return fmt.Errorf("partially saved (%s succeeded), then %q failed: %w",
				strings.Join(serr.Completed, ", "), serr.Step, serr.Err)
		}
		return fmt.Errorf("nothing was saved, %q failed: %w", serr.Step, serr.Err)
	}
	return err
}

func newTripRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tripID, err := parseTripID(args[0])
			if err != nil {
				return err
			}
			if !yes {
				if !interactiveTerminal() {
					return fmt.Errorf("use --yes to delete without confirmation")
				}
				ok, err := confirmDeletion(tripID)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Aborted.")
					return nil
				}
			}
			if err := app.Trips.Delete(context.Background(), tripID); err != nil {
				if errors.Is(err, tripapi.ErrNotFound) {
					return fmt.Errorf("trip %d not found", tripID)
				}
				return err
			}
			fmt.Printf("Deleted trip #%d\n", tripID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func newTripDaysCmd(app *App) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "days ID",
		Short: "Browse a trip's day-by-day itinerary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tripID, err := parseTripID(args[0])
			if err != nil {
				return err
			}
			snap, err := app.Trips.Show(context.Background(), tripID)
			if err != nil {
				return err
			}

			if interactive && interactiveTerminal() {
				return runDayBrowser(snap)
			}
			days := itinerary.BuildDays(snap.Trip.StartDate, snap.Trip.EndDate, assignmentPtrs(snap))
			fmt.Printf("%s\n", formatter.FormatDays(days, snap.Schedules))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Browse days in an interactive view")

	return cmd
}
