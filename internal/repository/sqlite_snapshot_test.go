package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhyun/tripnote/internal/domain"
	"github.com/jwhyun/tripnote/internal/testutil"
)

func snapshotFixture() *domain.Snapshot {
	cityID := int64(10)
	placeID := int64(77)
	return &domain.Snapshot{
		Trip: domain.Trip{ID: 3, Title: "Korea", StartDate: "2024-03-01", EndDate: "2024-03-04", UserID: 7},
		Assignments: []domain.CityAssignment{
			{ServerID: 100, CityID: &cityID, CityName: "Seoul", KoName: "서울",
				StartDate: "2024-03-01", EndDate: "2024-03-04"},
		},
		Days: []domain.SnapshotDay{
			{ServerID: 201, Sequence: 1},
			{ServerID: 202, Sequence: 2},
			{ServerID: 203, Sequence: 3},
			{ServerID: 204, Sequence: 4},
		},
		Schedules: map[int][]domain.ScheduleEntry{
			2: {{Life: domain.Persisted(301), Content: "Museum visit", StartTime: "10:00", EndTime: "12:00", PlaceID: &placeID}},
		},
		Checklist: []domain.ChecklistItem{
			{Life: domain.Persisted(401), Name: "passport", Checked: true},
			{Life: domain.Persisted(402), Name: "charger"},
		},
		FetchedAt: time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC),
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSnapshotRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.SaveTrip(ctx, snapshotFixture()))

	got, err := repo.GetTrip(ctx, 3)
	require.NoError(t, err)

	assert.Equal(t, "Korea", got.Trip.Title)
	assert.Equal(t, "2024-03-01", got.Trip.StartDate)
	assert.Equal(t, time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC), got.FetchedAt)

	require.Len(t, got.Assignments, 1)
	require.NotNil(t, got.Assignments[0].CityID)
	assert.Equal(t, int64(10), *got.Assignments[0].CityID)
	assert.Equal(t, "서울", got.Assignments[0].KoName)

	require.Len(t, got.Days, 4)
	id, ok := got.DayID(2)
	require.True(t, ok)
	assert.Equal(t, int64(202), id)

	require.Len(t, got.Schedules[2], 1)
	entry := got.Schedules[2][0]
	sid, ok := entry.Life.ServerID()
	require.True(t, ok)
	assert.Equal(t, int64(301), sid)
	assert.Equal(t, "Museum visit", entry.Content)
	require.NotNil(t, entry.PlaceID)
	assert.Equal(t, int64(77), *entry.PlaceID)

	require.Len(t, got.Checklist, 2)
	assert.True(t, got.Checklist[0].Checked)
	assert.False(t, got.Checklist[1].Checked)
}

func TestSaveTripReplacesExistingSnapshot(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSnapshotRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.SaveTrip(ctx, snapshotFixture()))

	updated := snapshotFixture()
	updated.Trip.Title = "Korea v2"
	updated.Checklist = updated.Checklist[:1]
	require.NoError(t, repo.SaveTrip(ctx, updated))

	got, err := repo.GetTrip(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Korea v2", got.Trip.Title)
	assert.Len(t, got.Checklist, 1, "old child rows must not survive a re-save")
}

func TestGetTripNotCached(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSnapshotRepo(database)

	_, err := repo.GetTrip(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotCached)
}

func TestDeleteTripCascades(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSnapshotRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.SaveTrip(ctx, snapshotFixture()))
	require.NoError(t, repo.DeleteTrip(ctx, 3))

	_, err := repo.GetTrip(ctx, 3)
	assert.ErrorIs(t, err, ErrNotCached)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM schedules`).Scan(&count))
	assert.Zero(t, count)
}

func TestListTripsOrderedByStartDate(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSnapshotRepo(database)
	ctx := context.Background()

	later := snapshotFixture()
	require.NoError(t, repo.SaveTrip(ctx, later))

	earlier := snapshotFixture()
	earlier.Trip = domain.Trip{ID: 4, Title: "Warmup", StartDate: "2024-01-10", EndDate: "2024-01-12", UserID: 7}
	earlier.Days = nil
	earlier.Schedules = map[int][]domain.ScheduleEntry{}
	require.NoError(t, repo.SaveTrip(ctx, earlier))

	trips, err := repo.ListTrips(ctx)
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, "Warmup", trips[0].Title)
	assert.Equal(t, "Korea", trips[1].Title)
}

func TestSaveTripRollsBackAtomically(t *testing.T) {
	database := testutil.NewTestDB(t)
	boom := errors.New("disk full")
	repo := NewSQLiteSnapshotRepoWithUoW(database, &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 4, // fails partway through the day inserts
		Err:    boom,
	})

	err := repo.SaveTrip(context.Background(), snapshotFixture())
	require.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM trips`).Scan(&count))
	assert.Zero(t, count, "a failed snapshot write must leave no partial rows")
}

func TestCityRepoRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteCityRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, testutil.TestCities()))

	cities, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, cities, 4)
	assert.Equal(t, "Seoul", cities[0].CityName)
	assert.Equal(t, "대한민국", cities[0].KoCountry)

	// ReplaceAll swaps, never merges.
	require.NoError(t, repo.ReplaceAll(ctx, []domain.City{{ID: 50, CityName: "Paris", KoName: "파리", KoCountry: "프랑스"}}))
	cities, err = repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, cities, 1)
	assert.Equal(t, "Paris", cities[0].CityName)
}
