package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jwhyun/tripnote/internal/cli/formatter"
	"github.com/jwhyun/tripnote/internal/domain"
	"github.com/jwhyun/tripnote/internal/draft"
	"github.com/jwhyun/tripnote/internal/reconcile"
)

func draftProblems(d *draft.Draft) []string {
	var verr *reconcile.ValidationError
	if errors.As(reconcile.Validate(d), &verr) {
		return verr.Problems
	}
	return nil
}

// tripnoteHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func tripnoteHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func runForm(groups ...*huh.Group) error {
	return huh.NewForm(groups...).WithTheme(tripnoteHuhTheme()).WithShowHelp(false).Run()
}

func confirmDeletion(tripID int64) (bool, error) {
	var ok bool
	err := runForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete trip #%d? This cannot be undone.", tripID)).
			Affirmative("Delete").
			Negative("Keep").
			Value(&ok),
	))
	return ok, err
}

// runTripWizard walks the user through the planning steps in any order
// until they finish. toggle, when non-nil, pushes checklist check state
// for already-saved items right away.
func runTripWizard(ctx context.Context, app *App, d *draft.Draft, toggle func(localID string) error) error {
	for {
		var choice string
		err := runForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title(wizardTitle(d)).
				Options(
					huh.NewOption("Trip details", "details"),
					huh.NewOption("Cities & dates", "cities"),
					huh.NewOption("Daily schedules", "schedules"),
					huh.NewOption("Checklist", "checklist"),
					huh.NewOption("Review & finish", "finish"),
				).
				Value(&choice),
		))
		if err != nil {
			return err
		}

		switch choice {
		case "details":
			err = editTripDetails(d)
		case "cities":
			err = editAssignments(ctx, app, d)
		case "schedules":
			err = editSchedules(d)
		case "checklist":
			err = editChecklist(d, toggle)
		case "finish":
			done, ferr := reviewDraft(d)
			if ferr != nil {
				return ferr
			}
			if done {
				return nil
			}
			continue
		}
		if err != nil {
			return err
		}
	}
}

func wizardTitle(d *draft.Draft) string {
	if d.Trip.Title == "" {
		return "Plan your trip"
	}
	return "Planning: " + d.Trip.Title
}

func editTripDetails(d *draft.Draft) error {
	title := d.Trip.Title
	start := d.Trip.StartDate
	end := d.Trip.EndDate

	err := runForm(huh.NewGroup(
		huh.NewInput().Title("Trip title").Value(&title),
		huh.NewInput().Title("Start date").Placeholder("YYYY-MM-DD").Value(&start),
		huh.NewInput().Title("End date").Placeholder("YYYY-MM-DD").Value(&end),
	))
	if err != nil {
		return err
	}

	d.Trip.Title = title
	d.Trip.StartDate = start
	d.Trip.EndDate = end
	return nil
}

func assignmentLabel(i int, a *domain.CityAssignment) string {
	name := a.CityName
	if name == "" {
		name = "(no city)"
	}
	return fmt.Sprintf("%d. %s  %s – %s", i+1, name, a.StartDate, a.EndDate)
}

func editAssignments(ctx context.Context, app *App, d *draft.Draft) error {
	for {
		options := make([]huh.Option[string], 0, len(d.Assignments)+3)
		for i, a := range d.Assignments {
			options = append(options, huh.NewOption(assignmentLabel(i, a), a.LocalID))
		}
		options = append(options,
			huh.NewOption("+ add a city", "add"),
			huh.NewOption("- remove a city", "remove"),
			huh.NewOption("back", "back"),
		)

		var choice string
		err := runForm(huh.NewGroup(
			huh.NewSelect[string]().Title("Cities & dates").Options(options...).Value(&choice),
		))
		if err != nil {
			return err
		}

		switch choice {
		case "back":
			return nil
		case "add":
			a := d.AddCityAssignment()
			if err := editAssignment(ctx, app, d, a.LocalID); err != nil {
				return err
			}
		case "remove":
			if err := removeAssignment(d); err != nil {
				return err
			}
		default:
			if err := editAssignment(ctx, app, d, choice); err != nil {
				return err
			}
		}
	}
}

func editAssignment(ctx context.Context, app *App, d *draft.Draft, localID string) error {
	countries, err := app.Cities.Countries(ctx)
	if err != nil {
		return err
	}
	countryOptions := make([]huh.Option[string], 0, len(countries))
	for _, c := range countries {
		countryOptions = append(countryOptions, huh.NewOption(c, c))
	}

	var country string
	if err := runForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Which country?").Options(countryOptions...).Value(&country),
	)); err != nil {
		return err
	}

	cities, err := app.Cities.CitiesIn(ctx, country)
	if err != nil {
		return err
	}
	cityOptions := make([]huh.Option[string], 0, len(cities))
	for _, c := range cities {
		cityOptions = append(cityOptions, huh.NewOption(fmt.Sprintf("%s (%s)", c.KoName, c.CityName), c.CityName))
	}

	var cityName, start, end string
	if err := runForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Which city?").Options(cityOptions...).Value(&cityName),
		huh.NewInput().Title("From").Placeholder("YYYY-MM-DD").Value(&start),
		huh.NewInput().Title("To").Placeholder("YYYY-MM-DD").Value(&end),
	)); err != nil {
		return err
	}

	city, err := app.Cities.Resolve(ctx, cityName)
	if err != nil {
		return err
	}
	d.SetAssignmentCity(localID, *city)
	d.SetAssignmentStartDate(localID, start)
	d.SetAssignmentEndDate(localID, end)
	return nil
}

func removeAssignment(d *draft.Draft) error {
	if len(d.Assignments) == 0 {
		return nil
	}
	options := make([]huh.Option[string], 0, len(d.Assignments)+1)
	for i, a := range d.Assignments {
		options = append(options, huh.NewOption(assignmentLabel(i, a), a.LocalID))
	}
	options = append(options, huh.NewOption("cancel", ""))

	var choice string
	err := runForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Remove which city?").Options(options...).Value(&choice),
	))
	if err != nil {
		return err
	}
	if choice != "" {
		d.RemoveCityAssignment(choice)
	}
	return nil
}

func editSchedules(d *draft.Draft) error {
	for {
		days := d.Days()
		if len(days) == 0 {
			fmt.Println(formatter.StyleDim.Render("Set the trip dates first."))
			return nil
		}

		options := make([]huh.Option[int], 0, len(days)+1)
		for _, day := range days {
			label := fmt.Sprintf("Day %d  %s  %s  (%d entries)",
				day.Sequence, day.Date, day.CityLabel(), len(d.Schedules[day.Sequence]))
			options = append(options, huh.NewOption(label, day.Sequence))
		}
		options = append(options, huh.NewOption("back", 0))

		var seq int
		err := runForm(huh.NewGroup(
			huh.NewSelect[int]().Title("Daily schedules").Options(options...).Value(&seq),
		))
		if err != nil {
			return err
		}
		if seq == 0 {
			return nil
		}
		if err := editDaySchedules(d, seq); err != nil {
			return err
		}
	}
}

func scheduleLabel(e *domain.ScheduleEntry) string {
	span := ""
	if e.StartTime != "" || e.EndTime != "" {
		span = fmt.Sprintf("%s–%s  ", e.StartTime, e.EndTime)
	}
	content := e.Content
	if strings.TrimSpace(content) == "" {
		content = "(empty)"
	}
	return span + content
}

func editDaySchedules(d *draft.Draft, seq int) error {
	for {
		entries := d.Schedules[seq]
		options := make([]huh.Option[string], 0, len(entries)+3)
		for _, e := range entries {
			options = append(options, huh.NewOption(scheduleLabel(e), e.LocalID))
		}
		options = append(options,
			huh.NewOption("+ add an entry", "add"),
			huh.NewOption("- remove an entry", "remove"),
			huh.NewOption("back", "back"),
		)

		var choice string
		err := runForm(huh.NewGroup(
			huh.NewSelect[string]().Title(fmt.Sprintf("Day %d schedules", seq)).Options(options...).Value(&choice),
		))
		if err != nil {
			return err
		}

		switch choice {
		case "back":
			return nil
		case "add":
			e := d.AddScheduleEntry(seq)
			if err := editScheduleEntry(d, seq, e.LocalID); err != nil {
				return err
			}
		case "remove":
			if err := removeScheduleEntry(d, seq); err != nil {
				return err
			}
		default:
			if err := editScheduleEntry(d, seq, choice); err != nil {
				return err
			}
		}
	}
}

func editScheduleEntry(d *draft.Draft, seq int, localID string) error {
	var content, start, end string
	for _, e := range d.Schedules[seq] {
		if e.LocalID == localID {
			content, start, end = e.Content, e.StartTime, e.EndTime
			break
		}
	}

	err := runForm(huh.NewGroup(
		huh.NewInput().Title("What's planned?").Value(&content),
		huh.NewInput().Title("Starts").Placeholder("HH:MM").Value(&start),
		huh.NewInput().Title("Ends").Placeholder("HH:MM").Value(&end),
	))
	if err != nil {
		return err
	}

	d.UpdateScheduleEntry(seq, localID, draft.SchedulePatch{
		Content:   &content,
		StartTime: &start,
		EndTime:   &end,
	})
	return nil
}

func removeScheduleEntry(d *draft.Draft, seq int) error {
	entries := d.Schedules[seq]
	if len(entries) == 0 {
		return nil
	}
	options := make([]huh.Option[string], 0, len(entries)+1)
	for _, e := range entries {
		options = append(options, huh.NewOption(scheduleLabel(e), e.LocalID))
	}
	options = append(options, huh.NewOption("cancel", ""))

	var choice string
	err := runForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Remove which entry?").Options(options...).Value(&choice),
	))
	if err != nil {
		return err
	}
	if choice != "" {
		d.RemoveScheduleEntry(seq, choice)
	}
	return nil
}

func editChecklist(d *draft.Draft, toggle func(localID string) error) error {
	for {
		options := make([]huh.Option[string], 0, len(d.Checklist)+3)
		for _, item := range d.Checklist {
			mark := "[ ]"
			if item.Checked {
				mark = "[x]"
			}
			name := item.Name
			if strings.TrimSpace(name) == "" {
				name = "(unnamed)"
			}
			options = append(options, huh.NewOption(fmt.Sprintf("%s %s", mark, name), item.LocalID))
		}
		options = append(options,
			huh.NewOption("+ add an item", "add"),
			huh.NewOption("- remove an item", "remove"),
			huh.NewOption("back", "back"),
		)

		var choice string
		err := runForm(huh.NewGroup(
			huh.NewSelect[string]().Title("Checklist").Options(options...).Value(&choice),
		))
		if err != nil {
			return err
		}

		switch choice {
		case "back":
			return nil
		case "add":
			item := d.AddChecklistItem()
			if err := renameChecklistItem(d, item.LocalID); err != nil {
				return err
			}
		case "remove":
			if err := removeChecklistItem(d); err != nil {
				return err
			}
		default:
			if err := checklistItemAction(d, choice, toggle); err != nil {
				return err
			}
		}
	}
}

func checklistItemAction(d *draft.Draft, localID string, toggle func(localID string) error) error {
	var action string
	err := runForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Checklist item").
			Options(
				huh.NewOption("Toggle checked", "toggle"),
				huh.NewOption("Rename", "rename"),
				huh.NewOption("back", "back"),
			).
			Value(&action),
	))
	if err != nil {
		return err
	}

	switch action {
	case "toggle":
		if toggle != nil {
			return toggle(localID)
		}
		for _, item := range d.Checklist {
			if item.LocalID == localID {
				checked := !item.Checked
				d.UpdateChecklistItem(localID, draft.ChecklistPatch{Checked: &checked})
				break
			}
		}
	case "rename":
		return renameChecklistItem(d, localID)
	}
	return nil
}

func renameChecklistItem(d *draft.Draft, localID string) error {
	var name string
	for _, item := range d.Checklist {
		if item.LocalID == localID {
			name = item.Name
			break
		}
	}

	err := runForm(huh.NewGroup(
		huh.NewInput().Title("Item").Value(&name),
	))
	if err != nil {
		return err
	}
	d.UpdateChecklistItem(localID, draft.ChecklistPatch{Name: &name})
	return nil
}

func removeChecklistItem(d *draft.Draft) error {
	if len(d.Checklist) == 0 {
		return nil
	}
	options := make([]huh.Option[string], 0, len(d.Checklist)+1)
	for _, item := range d.Checklist {
		options = append(options, huh.NewOption(item.Name, item.LocalID))
	}
	options = append(options, huh.NewOption("cancel", ""))

	var choice string
	err := runForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Remove which item?").Options(options...).Value(&choice),
	))
	if err != nil {
		return err
	}
	if choice != "" {
		d.RemoveChecklistItem(choice)
	}
	return nil
}

// reviewDraft shows the derived itinerary and the submit-readiness
// problems, then asks whether to finish. Finishing with problems is
// allowed only back into the menu, not out of the wizard.
func reviewDraft(d *draft.Draft) (bool, error) {
	days := d.Days()
	if len(days) > 0 {
		schedules := make(map[int][]domain.ScheduleEntry)
		for seq, entries := range d.Schedules {
			for _, e := range entries {
				schedules[seq] = append(schedules[seq], *e)
			}
		}
		fmt.Printf("%s\n", formatter.FormatDays(days, schedules))
	}

	problems := draftProblems(d)
	if len(problems) > 0 {
		fmt.Printf("%s\n", formatter.FormatProblems(problems))
		return false, nil
	}

	var done bool
	err := runForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Save this trip?").
			Affirmative("Save").
			Negative("Keep editing").
			Value(&done),
	))
	return done, err
}
