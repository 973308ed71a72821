package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhyun/tripnote/internal/domain"
	"github.com/jwhyun/tripnote/internal/itinerary"
)

func TestFormatTripList(t *testing.T) {
	out := FormatTripList([]domain.Trip{
		{ID: 3, Title: "Korea", StartDate: "2024-03-01", EndDate: "2024-03-04"},
		{ID: 4, Title: "Japan", StartDate: "2024-05-01", EndDate: "2024-05-02"},
	})

	assert.Contains(t, out, "Korea")
	assert.Contains(t, out, "4 days")
	assert.Contains(t, out, "Japan")
	assert.Contains(t, out, "2 days")
}

func TestFormatDays(t *testing.T) {
	cityID := int64(10)
	a := &domain.CityAssignment{
		LocalID: "x", CityID: &cityID, CityName: "Seoul", KoName: "서울",
		StartDate: "2024-03-01", EndDate: "2024-03-01",
	}
	days := itinerary.BuildDays("2024-03-01", "2024-03-02", []*domain.CityAssignment{a})
	require.Len(t, days, 2)

	out := FormatDays(days, map[int][]domain.ScheduleEntry{
		1: {{Content: "Palace tour"}},
	})

	assert.Contains(t, out, "서울")
	assert.Contains(t, out, "unassigned")
	assert.Contains(t, out, "2024-03-02")
}

func TestFormatChecklist(t *testing.T) {
	out := FormatChecklist([]domain.ChecklistItem{
		{Name: "passport", Checked: true},
		{Name: "charger"},
	})
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "[ ]")
	assert.Contains(t, out, "passport")

	assert.Contains(t, FormatChecklist(nil), "empty")
}

func TestFormatSnapshot(t *testing.T) {
	cityID := int64(10)
	snap := &domain.Snapshot{
		Trip: domain.Trip{ID: 3, Title: "Korea", StartDate: "2024-03-01", EndDate: "2024-03-02", UserID: 7},
		Assignments: []domain.CityAssignment{
			{ServerID: 100, CityID: &cityID, CityName: "Seoul", StartDate: "2024-03-01", EndDate: "2024-03-02"},
		},
		Schedules: map[int][]domain.ScheduleEntry{
			1: {{Content: "Museum visit", StartTime: "10:00", EndTime: "12:00"}},
		},
		Checklist: []domain.ChecklistItem{{Name: "passport"}},
	}

	out := FormatSnapshot(snap)
	assert.Contains(t, out, "Korea")
	assert.Contains(t, out, "Museum visit")
	assert.Contains(t, out, "10:00")
	assert.Contains(t, out, "passport")
	assert.Contains(t, out, "Day 1")
}

func TestRenderTableAlignsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "LONGHEADER"}, [][]string{
		{"first", "x"},
		{"s", "yy"},
	})
	assert.Contains(t, out, "LONGHEADER")
	assert.Contains(t, out, "first")

	assert.Empty(t, RenderTable(nil, nil))
}
