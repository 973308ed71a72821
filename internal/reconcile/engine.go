// Package reconcile pushes a draft's outstanding edits to the Trip Service.
// The service offers no multi-operation transaction, so a submit is an
// explicit saga: an ordered list of named steps, each one or more separate
// network calls. A failure aborts the remaining steps and surfaces which
// step broke; changes already applied stay applied, and the caller restores
// consistency by reloading the server snapshot after success.
package reconcile

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jwhyun/tripnote/internal/domain"
	"github.com/jwhyun/tripnote/internal/draft"
	"github.com/jwhyun/tripnote/internal/itinerary"
	"github.com/jwhyun/tripnote/internal/tripapi"
)

// Step names, in execution order for an update submit. Deletions run first
// so re-creates under the same day sequence cannot collide with rows that
// are about to disappear.
const (
	StepDeleteSchedules      = "delete-schedules"
	StepDeleteChecklistItems = "delete-checklist-items"
	StepUpdateTrip           = "update-trip"
	StepCreateTrip           = "create-trip"
	StepFetchDays            = "fetch-days"
	StepSyncChecklist        = "sync-checklist"
	StepSyncSchedules        = "sync-schedules"
)

// Engine reconciles drafts against the Trip Service.
type Engine struct {
	api tripapi.Client

	// now stamps newly created schedule entries; overridable in tests.
	now func() time.Time
}

// NewEngine creates an Engine backed by the given client.
func NewEngine(api tripapi.Client) *Engine {
	return &Engine{api: api, now: time.Now}
}

// Validate checks the submit preconditions without touching the network.
func (e *Engine) Validate(d *draft.Draft) error {
	return Validate(d)
}

// Validate checks the submit preconditions without touching the network:
// the trip dates must parse in order, every assignment needs a resolved
// city ID and both dates, and the assignment ranges must cover the trip's
// range exactly once. Returns *ValidationError listing every problem found.
func Validate(d *draft.Draft) error {
	var problems []string

	if err := d.Trip.Validate(); err != nil {
		problems = append(problems, err.Error())
	} else {
		for i, a := range d.Assignments {
			if a.CityID == nil {
				problems = append(problems, assignmentProblem(i, "no city selected"))
				continue
			}
			if a.StartDate == "" || a.EndDate == "" {
				problems = append(problems, assignmentProblem(i, "date range incomplete"))
			}
		}
		if len(problems) == 0 {
			if gaps := itinerary.CoverageGaps(d.Trip.StartDate, d.Trip.EndDate, d.Assignments); len(gaps) > 0 {
				problems = append(problems, "days without a city: "+joinDates(gaps))
			}
			if itinerary.AllocatedDays(d.Assignments) != d.Trip.DurationDays() {
				problems = append(problems, "city date ranges overlap or fall outside the trip")
			}
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Submit pushes every outstanding change of an already-persisted trip.
// The draft itself is never mutated; after success the caller discards it
// and reloads the snapshot.
func (e *Engine) Submit(ctx context.Context, d *draft.Draft) error {
	if err := e.Validate(d); err != nil {
		return err
	}

	r := &run{}

	if err := r.step(StepDeleteSchedules, func() error {
		return e.deleteSchedules(ctx, d.ScheduleDeletions())
	}); err != nil {
		return err
	}
	if err := r.step(StepDeleteChecklistItems, func() error {
		return e.deleteChecklistItems(ctx, d.ChecklistDeletions())
	}); err != nil {
		return err
	}
	if err := r.step(StepUpdateTrip, func() error {
		_, err := e.api.UpdateTrip(ctx, d.Trip.ID, tripapi.UpdateTripRequest{
			Title:      d.Trip.Title,
			StartDate:  d.Trip.StartDate,
			EndDate:    d.Trip.EndDate,
			TripCities: assignmentPayloads(d.Assignments),
		})
		return err
	}); err != nil {
		return err
	}

	var dayIDs map[int]int64
	if err := r.step(StepFetchDays, func() error {
		var err error
		dayIDs, err = e.fetchDayIDs(ctx, d.Trip.ID)
		return err
	}); err != nil {
		return err
	}

	if err := r.step(StepSyncChecklist, func() error {
		return e.syncChecklist(ctx, d.Trip.ID, d.Checklist)
	}); err != nil {
		return err
	}
	return r.step(StepSyncSchedules, func() error {
		return e.syncSchedules(ctx, d.Schedules, dayIDs)
	})
}

// Create persists a brand-new trip from the draft and returns its server
// ID. Same saga shape as Submit minus the delete and update steps: nothing
// exists on the server yet.
func (e *Engine) Create(ctx context.Context, d *draft.Draft) (int64, error) {
	if err := e.Validate(d); err != nil {
		return 0, err
	}

	r := &run{}

	var tripID int64
	if err := r.step(StepCreateTrip, func() error {
		created, err := e.api.CreateTrip(ctx, tripapi.CreateTripRequest{
			Title:      d.Trip.Title,
			StartDate:  d.Trip.StartDate,
			EndDate:    d.Trip.EndDate,
			UserID:     d.Trip.UserID,
			TripCities: assignmentPayloads(d.Assignments),
		})
		if err != nil {
			return err
		}
		tripID = created.ID
		return nil
	}); err != nil {
		return 0, err
	}

	var dayIDs map[int]int64
	if err := r.step(StepFetchDays, func() error {
		var err error
		dayIDs, err = e.fetchDayIDs(ctx, tripID)
		return err
	}); err != nil {
		return tripID, err
	}

	if err := r.step(StepSyncChecklist, func() error {
		return e.syncChecklist(ctx, tripID, d.Checklist)
	}); err != nil {
		return tripID, err
	}
	if err := r.step(StepSyncSchedules, func() error {
		return e.syncSchedules(ctx, d.Schedules, dayIDs)
	}); err != nil {
		return tripID, err
	}
	return tripID, nil
}

// run tracks which steps finished so a mid-saga failure can report what
// already changed on the server.
type run struct {
	completed []string
}

func (r *run) step(name string, fn func() error) error {
	if err := fn(); err != nil {
		return &StepError{Step: name, Completed: r.completed, Err: err}
	}
	r.completed = append(r.completed, name)
	return nil
}

func (e *Engine) deleteSchedules(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if err := e.api.DeleteSchedule(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) deleteChecklistItems(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if err := e.api.DeleteChecklistItem(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// fetchDayIDs re-reads the server's day records to get the authoritative
// sequence-to-ID mapping. The update call may have grown or shrunk the day
// list, so the mapping from before the submit cannot be trusted.
func (e *Engine) fetchDayIDs(ctx context.Context, tripID int64) (map[int]int64, error) {
	days, err := e.api.GetTripDays(ctx, tripID)
	if err != nil {
		return nil, err
	}
	ids := make(map[int]int64, len(days))
	for _, day := range days {
		ids[day.DaySequence] = day.ID
	}
	return ids, nil
}

func (e *Engine) syncChecklist(ctx context.Context, tripID int64, items []*domain.ChecklistItem) error {
	for _, item := range items {
		if item.Life.IsNew() {
			if item.Blank() {
				continue
			}
			_, err := e.api.CreateChecklistItem(ctx, tripapi.ChecklistItemPayload{
				TripID:    tripID,
				ItemName:  item.Name,
				IsChecked: item.Checked,
			})
			if err != nil {
				return err
			}
			continue
		}
		id, _ := item.Life.ServerID()
		_, err := e.api.UpdateChecklistItem(ctx, id, tripapi.UpdateChecklistItemRequest{
			ItemName:  item.Name,
			IsChecked: item.Checked,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// syncSchedules walks the draft's day sequences in order. A sequence with
// no server-side day record is skipped wholesale: the user shrank the date
// range and those entries are orphaned.
func (e *Engine) syncSchedules(ctx context.Context, schedules map[int][]*domain.ScheduleEntry, dayIDs map[int]int64) error {
	for _, seq := range sortedSequences(schedules) {
		dayID, ok := dayIDs[seq]
		if !ok {
			continue
		}
		for _, entry := range schedules[seq] {
			if entry.Life.IsNew() {
				if entry.Blank() {
					continue
				}
				_, err := e.api.CreateSchedule(ctx, tripapi.SchedulePayload{
					TripDayID:       dayID,
					ScheduleContent: entry.Content,
					StartTime:       optionalStr(entry.StartTime),
					EndTime:         optionalStr(entry.EndTime),
					PlaceID:         entry.PlaceID,
					ScheduleDate:    e.now().UTC().Format(time.RFC3339),
				})
				if err != nil {
					return err
				}
				continue
			}
			id, _ := entry.Life.ServerID()
			_, err := e.api.UpdateSchedule(ctx, id, tripapi.UpdateScheduleRequest{
				ScheduleContent: entry.Content,
				StartTime:       optionalStr(entry.StartTime),
				EndTime:         optionalStr(entry.EndTime),
				PlaceID:         entry.PlaceID,
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func sortedSequences(schedules map[int][]*domain.ScheduleEntry) []int {
	seqs := make([]int, 0, len(schedules))
	for seq := range schedules {
		seqs = append(seqs, seq)
	}
	sort.Ints(seqs)
	return seqs
}

func assignmentPayloads(assignments []*domain.CityAssignment) []tripapi.TripCityPayload {
	out := make([]tripapi.TripCityPayload, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, tripapi.TripCityPayload{
			CityID:    *a.CityID,
			StartDate: a.StartDate,
			EndDate:   a.EndDate,
		})
	}
	return out
}

func optionalStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func assignmentProblem(index int, msg string) string {
	return fmt.Sprintf("city %d: %s", index+1, msg)
}

func joinDates(dates []string) string {
	return strings.Join(dates, ", ")
}
