package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwhyun/tripnote/internal/domain"
)

// TripOption mutates a fixture trip.
type TripOption func(*domain.Trip)

func WithTripID(id int64) TripOption {
	return func(t *domain.Trip) { t.ID = id }
}

func WithTripDates(start, end string) TripOption {
	return func(t *domain.Trip) {
		t.StartDate = start
		t.EndDate = end
	}
}

func WithTripUser(userID int64) TripOption {
	return func(t *domain.Trip) { t.UserID = userID }
}

// NewTestTrip builds a three-day trip fixture.
func NewTestTrip(title string, opts ...TripOption) domain.Trip {
	t := domain.Trip{
		ID:        1,
		Title:     title,
		StartDate: "2026-06-01",
		EndDate:   "2026-06-03",
		UserID:    7,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// NewTestAssignment builds a complete city assignment covering the given
// range. cityID is recorded both as the catalog reference and the server
// row ID so the fixture works for loaded and unsaved drafts alike.
func NewTestAssignment(cityID int64, cityName, start, end string) domain.CityAssignment {
	return domain.CityAssignment{
		LocalID:   uuid.New().String(),
		ServerID:  cityID,
		CityID:    &cityID,
		CityName:  cityName,
		StartDate: start,
		EndDate:   end,
	}
}

// NewTestSnapshot builds a minimal consistent snapshot: one trip, one city
// assignment spanning the whole range, and one day record per calendar day.
func NewTestSnapshot(title string, opts ...TripOption) *domain.Snapshot {
	trip := NewTestTrip(title, opts...)
	snap := &domain.Snapshot{
		Trip:        trip,
		Assignments: []domain.CityAssignment{NewTestAssignment(10, "Seoul", trip.StartDate, trip.EndDate)},
		Schedules:   make(map[int][]domain.ScheduleEntry),
		FetchedAt:   time.Now().UTC(),
	}
	for seq := 1; seq <= trip.DurationDays(); seq++ {
		snap.Days = append(snap.Days, domain.SnapshotDay{
			ServerID: trip.ID*100 + int64(seq),
			Sequence: seq,
		})
	}
	return snap
}

// TestCities is a small city catalog spanning two countries.
func TestCities() []domain.City {
	return []domain.City{
		{ID: 10, CityName: "Seoul", KoName: "서울", KoCountry: "대한민국"},
		{ID: 11, CityName: "Busan", KoName: "부산", KoCountry: "대한민국"},
		{ID: 20, CityName: "Tokyo", KoName: "도쿄", KoCountry: "일본"},
		{ID: 21, CityName: "Osaka", KoName: "오사카", KoCountry: "일본"},
	}
}
