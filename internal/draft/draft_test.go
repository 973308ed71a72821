package draft

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhyun/tripnote/internal/domain"
)

func TestNewStartsWithBlankAssignment(t *testing.T) {
	d := New()
	require.Len(t, d.Assignments, 1)
	assert.NotEmpty(t, d.Assignments[0].LocalID)
	assert.Nil(t, d.Assignments[0].CityID)
}

func TestAssignmentMutations(t *testing.T) {
	d := New()
	a := d.Assignments[0]

	ok := d.SetAssignmentCity(a.LocalID, domain.City{ID: 10, CityName: "Seoul", KoName: "서울"})
	require.True(t, ok)
	require.NotNil(t, a.CityID)
	assert.Equal(t, int64(10), *a.CityID)
	assert.Equal(t, "Seoul", a.CityName)
	assert.Equal(t, "서울", a.KoName)

	// Raw values go in unvalidated; readiness checks happen at submit.
	require.True(t, d.SetAssignmentStartDate(a.LocalID, "not a date"))
	assert.Equal(t, "not a date", a.StartDate)

	assert.False(t, d.SetAssignmentCity("missing", domain.City{}))
}

func TestRemoveCityAssignmentKeepsSchedules(t *testing.T) {
	d := New()
	d.Trip.StartDate = "2024-03-01"
	d.Trip.EndDate = "2024-03-04"
	a := d.Assignments[0]
	d.SetAssignmentCity(a.LocalID, domain.City{ID: 10, CityName: "Seoul"})
	d.SetAssignmentStartDate(a.LocalID, "2024-03-01")
	d.SetAssignmentEndDate(a.LocalID, "2024-03-04")

	e := d.AddScheduleEntry(3)
	d.UpdateScheduleEntry(3, e.LocalID, SchedulePatch{Content: strPtr("stays put")})

	// Dropping the assignment must not disturb the sequence-keyed entries,
	// and recomputing the itinerary must not crash.
	require.True(t, d.RemoveCityAssignment(a.LocalID))
	assert.Empty(t, d.Assignments)
	require.Len(t, d.Schedules[3], 1)
	assert.Equal(t, "stays put", d.Schedules[3][0].Content)

	days := d.Days()
	require.Len(t, days, 4)
	for _, day := range days {
		assert.False(t, day.Assigned())
	}
}

func TestScheduleRemovalQueuesOnlyPersistedEntries(t *testing.T) {
	d := New()

	pending := d.AddScheduleEntry(1)
	persisted := &domain.ScheduleEntry{LocalID: "srv", Life: domain.Persisted(55), Content: "old"}
	d.Schedules[1] = append(d.Schedules[1], persisted)

	require.True(t, d.RemoveScheduleEntry(1, pending.LocalID))
	assert.Empty(t, d.ScheduleDeletions(), "a never-persisted entry must not reach the deletion queue")

	require.True(t, d.RemoveScheduleEntry(1, persisted.LocalID))
	assert.Equal(t, []int64{55}, d.ScheduleDeletions())
	assert.Empty(t, d.Schedules[1])

	// Second removal of the same entry is a no-op.
	assert.False(t, d.RemoveScheduleEntry(1, persisted.LocalID))
	assert.Equal(t, []int64{55}, d.ScheduleDeletions())
}

func TestChecklistRemovalQueue(t *testing.T) {
	d := New()
	d.Checklist = append(d.Checklist,
		&domain.ChecklistItem{LocalID: "a", Life: domain.Persisted(42), Name: "passport"},
		&domain.ChecklistItem{LocalID: "b", Life: domain.Persisted(43), Name: "charger"},
	)

	require.True(t, d.RemoveChecklistItem("b"))
	require.True(t, d.RemoveChecklistItem("a"))

	// Removal order is preserved.
	assert.Equal(t, []int64{43, 42}, d.ChecklistDeletions())
}

func TestUpdateChecklistItemReturnsItem(t *testing.T) {
	d := New()
	item := d.AddChecklistItem()

	checked := true
	got := d.UpdateChecklistItem(item.LocalID, ChecklistPatch{Name: strPtr("passport"), Checked: &checked})
	require.NotNil(t, got)
	assert.Equal(t, "passport", got.Name)
	assert.True(t, got.Checked)
	assert.Same(t, item, got)

	assert.Nil(t, d.UpdateChecklistItem("missing", ChecklistPatch{}))
}

func TestUpdateScheduleEntryPatchesInPlace(t *testing.T) {
	d := New()
	e := d.AddScheduleEntry(2)

	placeID := int64(9)
	place := &placeID
	ok := d.UpdateScheduleEntry(2, e.LocalID, SchedulePatch{
		Content:   strPtr("Museum visit"),
		StartTime: strPtr("10:00"),
		EndTime:   strPtr("12:00"),
		PlaceID:   &place,
	})
	require.True(t, ok)
	assert.Equal(t, "Museum visit", e.Content)
	assert.Equal(t, "10:00", e.StartTime)
	assert.Equal(t, "12:00", e.EndTime)
	require.NotNil(t, e.PlaceID)
	assert.Equal(t, int64(9), *e.PlaceID)

	// Untouched fields stay put.
	ok = d.UpdateScheduleEntry(2, e.LocalID, SchedulePatch{StartTime: strPtr("11:00")})
	require.True(t, ok)
	assert.Equal(t, "Museum visit", e.Content)
	assert.Equal(t, "11:00", e.StartTime)
}

func TestFromSnapshot(t *testing.T) {
	cityID := int64(10)
	snap := &domain.Snapshot{
		Trip: domain.Trip{ID: 3, Title: "Korea", StartDate: "2024-03-01", EndDate: "2024-03-02", UserID: 7},
		Assignments: []domain.CityAssignment{
			{ServerID: 100, CityID: &cityID, CityName: "Seoul", StartDate: "2024-03-01", EndDate: "2024-03-02"},
		},
		Days: []domain.SnapshotDay{{ServerID: 201, Sequence: 1}, {ServerID: 202, Sequence: 2}},
		Schedules: map[int][]domain.ScheduleEntry{
			1: {{Life: domain.Persisted(301), Content: "Palace tour"}},
		},
		Checklist: []domain.ChecklistItem{{Life: domain.Persisted(401), Name: "passport", Checked: true}},
		FetchedAt: time.Now(),
	}

	d := FromSnapshot(snap)

	assert.Equal(t, snap.Trip, d.Trip)
	require.Len(t, d.Assignments, 1)
	assert.NotEmpty(t, d.Assignments[0].LocalID)
	require.NotNil(t, d.Assignments[0].CityID)

	// The draft aliases nothing from the snapshot.
	*d.Assignments[0].CityID = 999
	assert.Equal(t, int64(10), *snap.Assignments[0].CityID)

	require.Len(t, d.Schedules[1], 1)
	assert.False(t, d.Schedules[1][0].Life.IsNew())
	require.Len(t, d.Checklist, 1)
	id, ok := d.Checklist[0].Life.ServerID()
	require.True(t, ok)
	assert.Equal(t, int64(401), id)
}

func TestFromSnapshotEmptyGetsBlankAssignment(t *testing.T) {
	snap := &domain.Snapshot{Trip: domain.Trip{ID: 1}, Schedules: map[int][]domain.ScheduleEntry{}}
	d := FromSnapshot(snap)
	require.Len(t, d.Assignments, 1)
	assert.Nil(t, d.Assignments[0].CityID)
}

func strPtr(s string) *string { return &s }
