package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwhyun/tripnote/internal/cli/formatter"
	"github.com/jwhyun/tripnote/internal/domain"
	"github.com/jwhyun/tripnote/internal/itinerary"
)

// dayBrowserModel is a two-pane view over a trip snapshot: the day list on
// top, the selected day's schedules below.
type dayBrowserModel struct {
	title     string
	days      []itinerary.Day
	schedules map[int][]domain.ScheduleEntry
	cursor    int
}

func newDayBrowser(snap *domain.Snapshot) dayBrowserModel {
	return dayBrowserModel{
		title:     snap.Trip.Title,
		days:      itinerary.BuildDays(snap.Trip.StartDate, snap.Trip.EndDate, assignmentPtrs(snap)),
		schedules: snap.Schedules,
	}
}

func runDayBrowser(snap *domain.Snapshot) error {
	_, err := tea.NewProgram(newDayBrowser(snap)).Run()
	return err
}

func assignmentPtrs(snap *domain.Snapshot) []*domain.CityAssignment {
	out := make([]*domain.CityAssignment, 0, len(snap.Assignments))
	for i := range snap.Assignments {
		out = append(out, &snap.Assignments[i])
	}
	return out
}

func (m dayBrowserModel) Init() tea.Cmd {
	return nil
}

func (m dayBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.days)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			if len(m.days) > 0 {
				m.cursor = len(m.days) - 1
			}
		}
	}
	return m, nil
}

func (m dayBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(formatter.StyleHeader.Render(m.title))
	b.WriteString("\n\n")

	if len(m.days) == 0 {
		b.WriteString(formatter.StyleDim.Render("No days to show."))
		b.WriteString("\n")
		return b.String()
	}

	for i, day := range m.days {
		marker := "  "
		line := fmt.Sprintf("Day %-2d  %s  %s", day.Sequence, day.Date, day.CityLabel())
		if i == m.cursor {
			marker = formatter.StyleHeader.Render("> ")
			line = formatter.StyleBold.Render(line)
		} else {
			line = formatter.CityStyle(day.Assigned()).Render(line)
		}
		b.WriteString(marker + line + "\n")
	}

	selected := m.days[m.cursor]
	b.WriteString("\n")
	b.WriteString(formatter.StyleBold.Render(fmt.Sprintf("Day %d", selected.Sequence)))
	b.WriteString("\n")
	b.WriteString(formatter.FormatSchedules(m.schedules[selected.Sequence]))
	b.WriteString("\n\n")
	b.WriteString(formatter.StyleDim.Render("↑/↓ move · q quit"))
	b.WriteString("\n")

	return b.String()
}
