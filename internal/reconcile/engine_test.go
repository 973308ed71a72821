package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhyun/tripnote/internal/domain"
	"github.com/jwhyun/tripnote/internal/draft"
	"github.com/jwhyun/tripnote/internal/testutil"
	"github.com/jwhyun/tripnote/internal/tripapi"
)

// seoulDraft builds a ready-to-submit draft for a persisted 4-day trip
// covered by a single Seoul assignment, matching the seeded fake trip.
func seoulDraft(t *testing.T, fake *testutil.FakeTripService) *draft.Draft {
	t.Helper()

	trip := domain.Trip{ID: 3, Title: "Korea", StartDate: "2024-03-01", EndDate: "2024-03-04", UserID: 7}
	fake.SeedTrip(trip, []tripapi.TripCityPayload{
		{CityID: 10, StartDate: "2024-03-01", EndDate: "2024-03-04"},
	})

	d := draft.New()
	d.Trip = trip
	a := d.Assignments[0]
	require.True(t, d.SetAssignmentCity(a.LocalID, domain.City{ID: 10, CityName: "Seoul", KoName: "서울"}))
	require.True(t, d.SetAssignmentStartDate(a.LocalID, "2024-03-01"))
	require.True(t, d.SetAssignmentEndDate(a.LocalID, "2024-03-04"))
	return d
}

func fixedEngine(fake *testutil.FakeTripService) *Engine {
	e := NewEngine(fake)
	e.now = func() time.Time { return time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC) }
	return e
}

func TestValidate(t *testing.T) {
	t.Run("missing city id fails without any network call", func(t *testing.T) {
		fake := testutil.NewFakeTripService()
		d := seoulDraft(t, fake)
		d.Assignments[0].CityID = nil
		fake.Calls = nil

		err := fixedEngine(fake).Submit(context.Background(), d)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.NotEmpty(t, verr.Problems)
		assert.Empty(t, fake.Calls, "validation failures must issue zero network calls")
	})

	t.Run("coverage gap is reported with the uncovered dates", func(t *testing.T) {
		fake := testutil.NewFakeTripService()
		d := seoulDraft(t, fake)
		d.SetAssignmentEndDate(d.Assignments[0].LocalID, "2024-03-02")

		err := fixedEngine(fake).Validate(d)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Problems, 1)
		assert.Contains(t, verr.Problems[0], "2024-03-03")
		assert.Contains(t, verr.Problems[0], "2024-03-04")
	})

	t.Run("overlapping ranges fail readiness", func(t *testing.T) {
		fake := testutil.NewFakeTripService()
		d := seoulDraft(t, fake)
		b := d.AddCityAssignment()
		require.True(t, d.SetAssignmentCity(b.LocalID, domain.City{ID: 11, CityName: "Busan"}))
		require.True(t, d.SetAssignmentStartDate(b.LocalID, "2024-03-03"))
		require.True(t, d.SetAssignmentEndDate(b.LocalID, "2024-03-04"))

		err := fixedEngine(fake).Validate(d)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("bad trip dates short-circuit assignment checks", func(t *testing.T) {
		fake := testutil.NewFakeTripService()
		d := seoulDraft(t, fake)
		d.Trip.EndDate = "soon"

		err := fixedEngine(fake).Validate(d)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Problems, 1)
	})
}

func TestSubmitCreatesScheduleOnCorrectDay(t *testing.T) {
	fake := testutil.NewFakeTripService()
	d := seoulDraft(t, fake)

	e := d.AddScheduleEntry(2)
	content := "Museum visit"
	start := "10:00"
	end := "12:00"
	d.UpdateScheduleEntry(2, e.LocalID, draft.SchedulePatch{
		Content:   &content,
		StartTime: &start,
		EndTime:   &end,
	})

	require.NoError(t, fixedEngine(fake).Submit(context.Background(), d))

	days, err := fake.GetTripDays(context.Background(), 3)
	require.NoError(t, err)
	var day2 int64
	for _, day := range days {
		if day.DaySequence == 2 {
			day2 = day.ID
		}
	}
	require.NotZero(t, day2)

	schedules, err := fake.GetSchedulesByDay(context.Background(), day2)
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	assert.Equal(t, "Museum visit", schedules[0].ScheduleContent)
	require.NotNil(t, schedules[0].StartTime)
	assert.Equal(t, "10:00", *schedules[0].StartTime)
	require.NotNil(t, schedules[0].EndTime)
	assert.Equal(t, "12:00", *schedules[0].EndTime)
}

func TestSubmitDeletesBeforeCreatesAndUpdates(t *testing.T) {
	fake := testutil.NewFakeTripService()
	d := seoulDraft(t, fake)

	item := &domain.ChecklistItem{LocalID: "cl-42", Life: domain.Persisted(42), Name: "passport"}
	fake.Checklist[42] = &tripapi.ChecklistItemPayload{ID: 42, TripID: 3, ItemName: "passport"}
	d.Checklist = append(d.Checklist, item)
	require.True(t, d.RemoveChecklistItem("cl-42"))

	added := d.AddChecklistItem()
	name := "charger"
	d.UpdateChecklistItem(added.LocalID, draft.ChecklistPatch{Name: &name})

	fake.Calls = nil
	require.NoError(t, fixedEngine(fake).Submit(context.Background(), d))

	deletes := fake.CallsFor("delete_checklist_item")
	require.Equal(t, []string{"delete_checklist_item:42"}, deletes)

	deleteIdx, writeIdx := -1, -1
	for i, call := range fake.Calls {
		switch call {
		case "delete_checklist_item:42":
			deleteIdx = i
		case "create_checklist_item":
			if writeIdx == -1 {
				writeIdx = i
			}
		}
	}
	require.NotEqual(t, -1, deleteIdx)
	require.NotEqual(t, -1, writeIdx)
	assert.Less(t, deleteIdx, writeIdx, "deletion must run before any create")
}

func TestSubmitDropsBlankNewItems(t *testing.T) {
	fake := testutil.NewFakeTripService()
	d := seoulDraft(t, fake)

	d.AddChecklistItem()     // never named
	d.AddScheduleEntry(1)    // never given content
	blank := "   "           // whitespace only counts as blank too
	e := d.AddScheduleEntry(2)
	d.UpdateScheduleEntry(2, e.LocalID, draft.SchedulePatch{Content: &blank})

	fake.Calls = nil
	require.NoError(t, fixedEngine(fake).Submit(context.Background(), d))

	assert.Empty(t, fake.CallsFor("create_checklist_item"))
	assert.Empty(t, fake.CallsFor("create_schedule"))
}

func TestSubmitSkipsOrphanedSequences(t *testing.T) {
	fake := testutil.NewFakeTripService()
	d := seoulDraft(t, fake)

	// An entry stranded past the trip's last day: no day record maps to
	// sequence 9, so it is skipped, not an error.
	orphan := d.AddScheduleEntry(9)
	content := "ghost"
	d.UpdateScheduleEntry(9, orphan.LocalID, draft.SchedulePatch{Content: &content})

	fake.Calls = nil
	require.NoError(t, fixedEngine(fake).Submit(context.Background(), d))
	assert.Empty(t, fake.CallsFor("create_schedule"))
}

func TestSubmitUpdatesExistingItemsUnconditionally(t *testing.T) {
	fake := testutil.NewFakeTripService()
	d := seoulDraft(t, fake)

	fake.Checklist[42] = &tripapi.ChecklistItemPayload{ID: 42, TripID: 3, ItemName: "passport"}
	d.Checklist = append(d.Checklist, &domain.ChecklistItem{
		LocalID: "cl-42", Life: domain.Persisted(42), Name: "passport", Checked: true,
	})

	require.NoError(t, fixedEngine(fake).Submit(context.Background(), d))

	assert.Equal(t, []string{"update_checklist_item:42"}, fake.CallsFor("update_checklist_item"))
	assert.True(t, fake.Checklist[42].IsChecked)
}

func TestSubmitPartialFailure(t *testing.T) {
	fake := testutil.NewFakeTripService()
	d := seoulDraft(t, fake)
	boom := errors.New("boom")
	fake.FailOn["update_trip"] = boom

	err := fixedEngine(fake).Submit(context.Background(), d)

	var serr *StepError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, StepUpdateTrip, serr.Step)
	assert.Equal(t, []string{StepDeleteSchedules, StepDeleteChecklistItems}, serr.Completed)
	assert.ErrorIs(t, err, boom)

	// Nothing past the failed step ran.
	assert.Empty(t, fake.CallsFor("get_trip_days"))
}

func TestSubmitFailureLeavesDraftUntouched(t *testing.T) {
	fake := testutil.NewFakeTripService()
	d := seoulDraft(t, fake)

	fake.Schedules[55] = &tripapi.SchedulePayload{ID: 55, TripDayID: 1, ScheduleContent: "old"}
	d.Schedules[1] = append(d.Schedules[1], &domain.ScheduleEntry{
		LocalID: "s-55", Life: domain.Persisted(55), Content: "old",
	})
	require.True(t, d.RemoveScheduleEntry(1, "s-55"))

	fake.FailOn["update_trip"] = errors.New("boom")
	err := fixedEngine(fake).Submit(context.Background(), d)
	require.Error(t, err)

	// The queue survives the failure, so a retry re-sends the deletion.
	assert.Equal(t, []int64{55}, d.ScheduleDeletions())
}

func TestCreate(t *testing.T) {
	fake := testutil.NewFakeTripService()

	d := draft.New()
	d.Trip = domain.Trip{Title: "Japan", StartDate: "2024-05-01", EndDate: "2024-05-02", UserID: 7}
	a := d.Assignments[0]
	require.True(t, d.SetAssignmentCity(a.LocalID, domain.City{ID: 20, CityName: "Tokyo"}))
	require.True(t, d.SetAssignmentStartDate(a.LocalID, "2024-05-01"))
	require.True(t, d.SetAssignmentEndDate(a.LocalID, "2024-05-02"))

	e := d.AddScheduleEntry(1)
	content := "Shibuya"
	d.UpdateScheduleEntry(1, e.LocalID, draft.SchedulePatch{Content: &content})
	item := d.AddChecklistItem()
	name := "passport"
	d.UpdateChecklistItem(item.LocalID, draft.ChecklistPatch{Name: &name})

	tripID, err := fixedEngine(fake).Create(context.Background(), d)
	require.NoError(t, err)
	require.NotZero(t, tripID)

	created, err := fake.GetTrip(context.Background(), tripID)
	require.NoError(t, err)
	assert.Equal(t, "Japan", created.Title)
	require.Len(t, created.TripCities, 1)
	assert.Equal(t, int64(20), created.TripCities[0].CityID)

	items, err := fake.GetChecklistItemsByTrip(context.Background(), tripID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "passport", items[0].ItemName)

	days, err := fake.GetTripDays(context.Background(), tripID)
	require.NoError(t, err)
	require.Len(t, days, 2)
	schedules, err := fake.GetSchedulesByDay(context.Background(), days[0].ID)
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	assert.Equal(t, "Shibuya", schedules[0].ScheduleContent)

	// No update or delete traffic on a fresh trip.
	assert.Empty(t, fake.CallsFor("update_trip"))
	assert.Empty(t, fake.CallsFor("delete_schedule"))
}
