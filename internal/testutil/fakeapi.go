package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/jwhyun/tripnote/internal/domain"
	"github.com/jwhyun/tripnote/internal/tripapi"
)

// FakeTripService is an in-memory tripapi.Client. It mimics the parts of
// the real service's behavior the editor depends on: day records are
// regenerated from the trip date range on every create and update, and
// joined city data is attached to trip responses from the catalog.
//
// Every call appends an entry to Calls ("op" or "op:id"), so tests can
// assert call ordering. FailOn injects an error for a given op name.
type FakeTripService struct {
	mu     sync.Mutex
	Calls  []string
	FailOn map[string]error

	nextID    int64
	Trips     map[int64]*tripapi.TripPayload
	Days      map[int64][]tripapi.TripDayPayload
	Schedules map[int64]*tripapi.SchedulePayload
	Checklist map[int64]*tripapi.ChecklistItemPayload
	Cities    []tripapi.CityPayload
}

// NewFakeTripService creates an empty fake with the standard test city
// catalog loaded.
func NewFakeTripService() *FakeTripService {
	f := &FakeTripService{
		FailOn:    make(map[string]error),
		nextID:    1000,
		Trips:     make(map[int64]*tripapi.TripPayload),
		Days:      make(map[int64][]tripapi.TripDayPayload),
		Schedules: make(map[int64]*tripapi.SchedulePayload),
		Checklist: make(map[int64]*tripapi.ChecklistItemPayload),
	}
	for _, c := range TestCities() {
		f.Cities = append(f.Cities, tripapi.CityPayload{
			ID: c.ID, CityName: c.CityName, KoName: c.KoName, KoCountry: c.KoCountry,
		})
	}
	return f
}

// CallsFor returns the recorded calls with the given op name, in order.
func (f *FakeTripService) CallsFor(op string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.Calls {
		if c == op || len(c) > len(op) && c[:len(op)] == op && c[len(op)] == ':' {
			out = append(out, c)
		}
	}
	return out
}

func (f *FakeTripService) record(op string, err error) error {
	f.Calls = append(f.Calls, op)
	return err
}

func (f *FakeTripService) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *FakeTripService) notFound(op string, id int64) error {
	return &tripapi.APIError{Op: op, Status: 404, Detail: []byte(fmt.Sprintf(`"id %d not found"`, id))}
}

// SeedTrip installs a trip with generated day records and returns it.
func (f *FakeTripService) SeedTrip(trip domain.Trip, cities []tripapi.TripCityPayload) *tripapi.TripPayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &tripapi.TripPayload{
		ID:        trip.ID,
		Title:     trip.Title,
		StartDate: trip.StartDate,
		EndDate:   trip.EndDate,
		UserID:    trip.UserID,
	}
	for _, tc := range cities {
		if tc.ID == 0 {
			tc.ID = f.id()
		}
		tc.TripID = p.ID
		tc.City = f.cityByID(tc.CityID)
		p.TripCities = append(p.TripCities, tc)
	}
	f.Trips[p.ID] = p
	f.regenerateDays(p)
	return p
}

func (f *FakeTripService) cityByID(id int64) *tripapi.CityPayload {
	for i := range f.Cities {
		if f.Cities[i].ID == id {
			c := f.Cities[i]
			return &c
		}
	}
	return nil
}

func (f *FakeTripService) regenerateDays(p *tripapi.TripPayload) {
	start, err1 := domain.ParseDate(p.StartDate)
	end, err2 := domain.ParseDate(p.EndDate)
	if err1 != nil || err2 != nil {
		return
	}
	var days []tripapi.TripDayPayload
	for seq := 1; seq <= domain.DaysInclusive(start, end); seq++ {
		days = append(days, tripapi.TripDayPayload{ID: f.id(), TripID: p.ID, DaySequence: seq})
	}
	f.Days[p.ID] = days
}

func (f *FakeTripService) GetTrip(ctx context.Context, id int64) (*tripapi.TripPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("get_trip:%d", id), f.FailOn["get_trip"]); err != nil {
		return nil, err
	}
	p, ok := f.Trips[id]
	if !ok {
		return nil, f.notFound("get_trip", id)
	}
	cp := *p
	return &cp, nil
}

func (f *FakeTripService) ListTrips(ctx context.Context, userID int64) ([]tripapi.TripPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("list_trips", f.FailOn["list_trips"]); err != nil {
		return nil, err
	}
	var out []tripapi.TripPayload
	for _, p := range f.Trips {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *FakeTripService) CreateTrip(ctx context.Context, req tripapi.CreateTripRequest) (*tripapi.TripPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("create_trip", f.FailOn["create_trip"]); err != nil {
		return nil, err
	}
	p := &tripapi.TripPayload{
		ID:        f.id(),
		Title:     req.Title,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		UserID:    req.UserID,
	}
	for _, tc := range req.TripCities {
		tc.ID = f.id()
		tc.TripID = p.ID
		tc.City = f.cityByID(tc.CityID)
		p.TripCities = append(p.TripCities, tc)
	}
	f.Trips[p.ID] = p
	f.regenerateDays(p)
	cp := *p
	return &cp, nil
}

func (f *FakeTripService) UpdateTrip(ctx context.Context, id int64, req tripapi.UpdateTripRequest) (*tripapi.TripPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("update_trip:%d", id), f.FailOn["update_trip"]); err != nil {
		return nil, err
	}
	p, ok := f.Trips[id]
	if !ok {
		return nil, f.notFound("update_trip", id)
	}
	p.Title = req.Title
	p.StartDate = req.StartDate
	p.EndDate = req.EndDate
	p.TripCities = nil
	for _, tc := range req.TripCities {
		if tc.ID == 0 {
			tc.ID = f.id()
		}
		tc.TripID = id
		tc.City = f.cityByID(tc.CityID)
		p.TripCities = append(p.TripCities, tc)
	}
	f.regenerateDays(p)
	cp := *p
	return &cp, nil
}

func (f *FakeTripService) DeleteTrip(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("delete_trip:%d", id), f.FailOn["delete_trip"]); err != nil {
		return err
	}
	if _, ok := f.Trips[id]; !ok {
		return f.notFound("delete_trip", id)
	}
	delete(f.Trips, id)
	delete(f.Days, id)
	for sid, s := range f.Schedules {
		if f.dayTrip(s.TripDayID) == id {
			delete(f.Schedules, sid)
		}
	}
	for cid, c := range f.Checklist {
		if c.TripID == id {
			delete(f.Checklist, cid)
		}
	}
	return nil
}

func (f *FakeTripService) dayTrip(dayID int64) int64 {
	for tripID, days := range f.Days {
		for _, d := range days {
			if d.ID == dayID {
				return tripID
			}
		}
	}
	return 0
}

func (f *FakeTripService) GetTripDays(ctx context.Context, tripID int64) ([]tripapi.TripDayPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("get_trip_days:%d", tripID), f.FailOn["get_trip_days"]); err != nil {
		return nil, err
	}
	if _, ok := f.Trips[tripID]; !ok {
		return nil, f.notFound("get_trip_days", tripID)
	}
	return append([]tripapi.TripDayPayload(nil), f.Days[tripID]...), nil
}

func (f *FakeTripService) GetSchedulesByDay(ctx context.Context, dayID int64) ([]tripapi.SchedulePayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("get_schedules:%d", dayID), f.FailOn["get_schedules"]); err != nil {
		return nil, err
	}
	var out []tripapi.SchedulePayload
	for _, s := range f.Schedules {
		if s.TripDayID == dayID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *FakeTripService) CreateSchedule(ctx context.Context, req tripapi.SchedulePayload) (*tripapi.SchedulePayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("create_schedule", f.FailOn["create_schedule"]); err != nil {
		return nil, err
	}
	s := req
	s.ID = f.id()
	f.Schedules[s.ID] = &s
	cp := s
	return &cp, nil
}

func (f *FakeTripService) UpdateSchedule(ctx context.Context, id int64, req tripapi.UpdateScheduleRequest) (*tripapi.SchedulePayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("update_schedule:%d", id), f.FailOn["update_schedule"]); err != nil {
		return nil, err
	}
	s, ok := f.Schedules[id]
	if !ok {
		return nil, f.notFound("update_schedule", id)
	}
	s.ScheduleContent = req.ScheduleContent
	s.StartTime = req.StartTime
	s.EndTime = req.EndTime
	s.PlaceID = req.PlaceID
	cp := *s
	return &cp, nil
}

func (f *FakeTripService) DeleteSchedule(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("delete_schedule:%d", id), f.FailOn["delete_schedule"]); err != nil {
		return err
	}
	if _, ok := f.Schedules[id]; !ok {
		return f.notFound("delete_schedule", id)
	}
	delete(f.Schedules, id)
	return nil
}

func (f *FakeTripService) GetChecklistItemsByTrip(ctx context.Context, tripID int64) ([]tripapi.ChecklistItemPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("get_checklist:%d", tripID), f.FailOn["get_checklist"]); err != nil {
		return nil, err
	}
	var out []tripapi.ChecklistItemPayload
	for _, c := range f.Checklist {
		if c.TripID == tripID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *FakeTripService) CreateChecklistItem(ctx context.Context, req tripapi.ChecklistItemPayload) (*tripapi.ChecklistItemPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("create_checklist_item", f.FailOn["create_checklist_item"]); err != nil {
		return nil, err
	}
	c := req
	c.ID = f.id()
	f.Checklist[c.ID] = &c
	cp := c
	return &cp, nil
}

func (f *FakeTripService) UpdateChecklistItem(ctx context.Context, id int64, req tripapi.UpdateChecklistItemRequest) (*tripapi.ChecklistItemPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("update_checklist_item:%d", id), f.FailOn["update_checklist_item"]); err != nil {
		return nil, err
	}
	c, ok := f.Checklist[id]
	if !ok {
		return nil, f.notFound("update_checklist_item", id)
	}
	c.ItemName = req.ItemName
	c.IsChecked = req.IsChecked
	cp := *c
	return &cp, nil
}

func (f *FakeTripService) DeleteChecklistItem(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("delete_checklist_item:%d", id), f.FailOn["delete_checklist_item"]); err != nil {
		return err
	}
	if _, ok := f.Checklist[id]; !ok {
		return f.notFound("delete_checklist_item", id)
	}
	delete(f.Checklist, id)
	return nil
}

func (f *FakeTripService) GetAllCities(ctx context.Context) ([]tripapi.CityPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("get_all_cities", f.FailOn["get_all_cities"]); err != nil {
		return nil, err
	}
	return append([]tripapi.CityPayload(nil), f.Cities...), nil
}
