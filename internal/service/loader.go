package service

import (
	"context"
	"time"

	"github.com/jwhyun/tripnote/internal/domain"
	"github.com/jwhyun/tripnote/internal/tripapi"
)

// loadSnapshot assembles a trip's full snapshot from the Trip Service:
// the trip with its city ranges, the day records, each day's schedules
// keyed by sequence, and the checklist.
func loadSnapshot(ctx context.Context, api tripapi.Client, tripID int64) (*domain.Snapshot, error) {
	trip, err := api.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	snap := &domain.Snapshot{
		Trip:      tripFromPayload(trip),
		Schedules: make(map[int][]domain.ScheduleEntry),
		FetchedAt: time.Now().UTC(),
	}
	for _, tc := range trip.TripCities {
		snap.Assignments = append(snap.Assignments, assignmentFromPayload(tc))
	}

	days, err := api.GetTripDays(ctx, tripID)
	if err != nil {
		return nil, err
	}
	for _, day := range days {
		snap.Days = append(snap.Days, domain.SnapshotDay{
			ServerID: day.ID,
			Sequence: day.DaySequence,
		})
		schedules, err := api.GetSchedulesByDay(ctx, day.ID)
		if err != nil {
			return nil, err
		}
		for _, s := range schedules {
			snap.Schedules[day.DaySequence] = append(snap.Schedules[day.DaySequence], scheduleFromPayload(s))
		}
	}

	items, err := api.GetChecklistItemsByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		snap.Checklist = append(snap.Checklist, domain.ChecklistItem{
			Life:    domain.Persisted(item.ID),
			Name:    item.ItemName,
			Checked: item.IsChecked,
		})
	}

	return snap, nil
}

func tripFromPayload(p *tripapi.TripPayload) domain.Trip {
	return domain.Trip{
		ID:        p.ID,
		Title:     p.Title,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		UserID:    p.UserID,
	}
}

func assignmentFromPayload(tc tripapi.TripCityPayload) domain.CityAssignment {
	cityID := tc.CityID
	a := domain.CityAssignment{
		ServerID:  tc.ID,
		CityID:    &cityID,
		StartDate: tc.StartDate,
		EndDate:   tc.EndDate,
	}
	if tc.City != nil {
		a.CityName = tc.City.CityName
		a.KoName = tc.City.KoName
	}
	return a
}

func scheduleFromPayload(s tripapi.SchedulePayload) domain.ScheduleEntry {
	e := domain.ScheduleEntry{
		Life:    domain.Persisted(s.ID),
		Content: s.ScheduleContent,
	}
	if s.StartTime != nil {
		e.StartTime = *s.StartTime
	}
	if s.EndTime != nil {
		e.EndTime = *s.EndTime
	}
	if s.PlaceID != nil {
		id := *s.PlaceID
		e.PlaceID = &id
	}
	return e
}
