package formatter

import (
	"fmt"
	"strings"

	"github.com/jwhyun/tripnote/internal/domain"
	"github.com/jwhyun/tripnote/internal/itinerary"
)

// FormatTripList renders a table of trip headers.
func FormatTripList(trips []domain.Trip) string {
	rows := make([][]string, 0, len(trips))
	for _, t := range trips {
		rows = append(rows, []string{
			fmt.Sprintf("%d", t.ID),
			StyleBold.Render(t.Title),
			t.StartDate,
			t.EndDate,
			fmt.Sprintf("%d days", t.DurationDays()),
		})
	}
	return RenderTable([]string{"ID", "TITLE", "FROM", "TO", "LENGTH"}, rows)
}

// FormatDays renders the derived itinerary, one line per day with its
// city and schedule count.
func FormatDays(days []itinerary.Day, schedules map[int][]domain.ScheduleEntry) string {
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		label := CityStyle(d.Assigned()).Render(d.CityLabel())
		rows = append(rows, []string{
			fmt.Sprintf("%d", d.Sequence),
			d.Date,
			label,
			fmt.Sprintf("%d", len(schedules[d.Sequence])),
		})
	}
	return RenderTable([]string{"DAY", "DATE", "CITY", "SCHEDULES"}, rows)
}

// FormatSchedules renders one day's schedule entries.
func FormatSchedules(entries []domain.ScheduleEntry) string {
	if len(entries) == 0 {
		return StyleDim.Render("  (no schedules)")
	}
	var b strings.Builder
	for _, e := range entries {
		span := ""
		if e.StartTime != "" || e.EndTime != "" {
			span = StyleYellow.Render(fmt.Sprintf("%s–%s ", e.StartTime, e.EndTime))
		}
		fmt.Fprintf(&b, "  %s%s\n", span, e.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatChecklist renders the packing list with check markers.
func FormatChecklist(items []domain.ChecklistItem) string {
	if len(items) == 0 {
		return StyleDim.Render("  (empty)")
	}
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "  %s %s\n", CheckMark(item.Checked), item.Name)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatSnapshot renders a trip's full snapshot: header, itinerary,
// per-day schedules, and checklist.
func FormatSnapshot(snap *domain.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", StyleHeader.Render(snap.Trip.Title),
		StyleDim.Render(fmt.Sprintf("(#%d)", snap.Trip.ID)))
	fmt.Fprintf(&b, "%s %s %s %s\n\n",
		StyleDim.Render("from"), snap.Trip.StartDate,
		StyleDim.Render("to"), snap.Trip.EndDate)

	days := itinerary.BuildDays(snap.Trip.StartDate, snap.Trip.EndDate, assignmentPtrs(snap.Assignments))
	b.WriteString(FormatDays(days, snap.Schedules))
	b.WriteString("\n")

	for _, d := range days {
		entries := snap.Schedules[d.Sequence]
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s %s\n", StyleBold.Render(fmt.Sprintf("Day %d", d.Sequence)),
			StyleDim.Render(d.Date))
		b.WriteString(FormatSchedules(entries))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n%s\n", StyleBold.Render("Checklist"))
	b.WriteString(FormatChecklist(snap.Checklist))

	return b.String()
}

// FormatProblems renders submit-readiness problems as a bulleted list.
func FormatProblems(problems []string) string {
	var b strings.Builder
	for _, p := range problems {
		fmt.Fprintf(&b, "%s %s\n", StyleRed.Render("✗"), p)
	}
	return strings.TrimRight(b.String(), "\n")
}

func assignmentPtrs(assignments []domain.CityAssignment) []*domain.CityAssignment {
	out := make([]*domain.CityAssignment, 0, len(assignments))
	for i := range assignments {
		out = append(out, &assignments[i])
	}
	return out
}
