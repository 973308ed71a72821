// Package draft holds the in-memory edit state of one trip between load
// and submit. The draft is exclusively owned by the current edit session;
// it is discarded and rebuilt from the server snapshot after a successful
// submit or on cancel. Mutations patch items in place, so entries the user
// has not touched keep their identity across operations.
package draft

import (
	"github.com/google/uuid"

	"github.com/jwhyun/tripnote/internal/domain"
	"github.com/jwhyun/tripnote/internal/itinerary"
)

// Draft aggregates every outstanding edit: the trip header, the city
// assignments, per-day schedule entries keyed by day sequence, the
// checklist, and the items removed since load that still need server-side
// deletion.
type Draft struct {
	Trip        domain.Trip
	Assignments []*domain.CityAssignment
	Schedules   map[int][]*domain.ScheduleEntry
	Checklist   []*domain.ChecklistItem

	// Removed persisted items, in removal order. Only items whose
	// lifecycle allowed the marked-for-deletion transition land here, so
	// a never-persisted entry cannot be queued.
	removedSchedules []*domain.ScheduleEntry
	removedChecklist []*domain.ChecklistItem
}

// New creates an empty draft for a fresh trip with one blank assignment,
// mirroring how the edit form starts.
func New() *Draft {
	d := &Draft{Schedules: make(map[int][]*domain.ScheduleEntry)}
	d.AddCityAssignment()
	return d
}

// FromSnapshot builds an editable draft from a loaded server snapshot.
// Every item gets a fresh local ID; server identity travels in the
// lifecycle, so the draft never aliases the snapshot's slices.
func FromSnapshot(snap *domain.Snapshot) *Draft {
	d := &Draft{
		Trip:      snap.Trip,
		Schedules: make(map[int][]*domain.ScheduleEntry),
	}
	for _, a := range snap.Assignments {
		cp := a
		cp.LocalID = uuid.New().String()
		if a.CityID != nil {
			id := *a.CityID
			cp.CityID = &id
		}
		d.Assignments = append(d.Assignments, &cp)
	}
	if len(d.Assignments) == 0 {
		d.AddCityAssignment()
	}
	for seq, entries := range snap.Schedules {
		for _, e := range entries {
			cp := e
			cp.LocalID = uuid.New().String()
			if e.PlaceID != nil {
				id := *e.PlaceID
				cp.PlaceID = &id
			}
			d.Schedules[seq] = append(d.Schedules[seq], &cp)
		}
	}
	for _, c := range snap.Checklist {
		cp := c
		cp.LocalID = uuid.New().String()
		d.Checklist = append(d.Checklist, &cp)
	}
	return d
}

// Days derives the current itinerary from the draft's dates and
// assignments. Never cached; call again after any mutation.
func (d *Draft) Days() []itinerary.Day {
	return itinerary.BuildDays(d.Trip.StartDate, d.Trip.EndDate, d.Assignments)
}

// AddCityAssignment appends an empty assignment with a fresh local ID and
// returns it.
func (d *Draft) AddCityAssignment() *domain.CityAssignment {
	a := &domain.CityAssignment{LocalID: uuid.New().String()}
	d.Assignments = append(d.Assignments, a)
	return a
}

// RemoveCityAssignment drops the assignment with the given local ID.
// Schedules stay keyed by their old day sequence; after the itinerary is
// recomputed they attach to whatever day now holds that sequence, and
// sequences past the new end are skipped at submit.
func (d *Draft) RemoveCityAssignment(localID string) bool {
	for i, a := range d.Assignments {
		if a.LocalID == localID {
			d.Assignments = append(d.Assignments[:i], d.Assignments[i+1:]...)
			return true
		}
	}
	return false
}

// SetAssignmentCity records the chosen city on an assignment, resolving the
// catalog entry to its server ID and display name in one step.
func (d *Draft) SetAssignmentCity(localID string, city domain.City) bool {
	a := d.findAssignment(localID)
	if a == nil {
		return false
	}
	id := city.ID
	a.CityID = &id
	a.CityName = city.CityName
	a.KoName = city.KoName
	return true
}

// SetAssignmentStartDate stores the raw date value. No range or coverage
// validation happens here; that is the submit-readiness check's job.
func (d *Draft) SetAssignmentStartDate(localID, value string) bool {
	a := d.findAssignment(localID)
	if a == nil {
		return false
	}
	a.StartDate = value
	return true
}

// SetAssignmentEndDate stores the raw date value.
func (d *Draft) SetAssignmentEndDate(localID, value string) bool {
	a := d.findAssignment(localID)
	if a == nil {
		return false
	}
	a.EndDate = value
	return true
}

func (d *Draft) findAssignment(localID string) *domain.CityAssignment {
	for _, a := range d.Assignments {
		if a.LocalID == localID {
			return a
		}
	}
	return nil
}

// SchedulePatch carries the optional field updates for a schedule entry.
type SchedulePatch struct {
	Content   *string
	StartTime *string
	EndTime   *string
	PlaceID   **int64
}

// AddScheduleEntry appends a pending entry under the given day sequence
// and returns it.
func (d *Draft) AddScheduleEntry(daySeq int) *domain.ScheduleEntry {
	e := &domain.ScheduleEntry{
		LocalID: uuid.New().String(),
		Life:    domain.Pending(),
	}
	d.Schedules[daySeq] = append(d.Schedules[daySeq], e)
	return e
}

// UpdateScheduleEntry patches an entry in place.
func (d *Draft) UpdateScheduleEntry(daySeq int, localID string, patch SchedulePatch) bool {
	for _, e := range d.Schedules[daySeq] {
		if e.LocalID != localID {
			continue
		}
		if patch.Content != nil {
			e.Content = *patch.Content
		}
		if patch.StartTime != nil {
			e.StartTime = *patch.StartTime
		}
		if patch.EndTime != nil {
			e.EndTime = *patch.EndTime
		}
		if patch.PlaceID != nil {
			e.PlaceID = *patch.PlaceID
		}
		return true
	}
	return false
}

// RemoveScheduleEntry removes an entry from the draft. A persisted entry is
// queued for server-side deletion; a pending one just disappears. Calling
// it again with the same ID is a no-op.
func (d *Draft) RemoveScheduleEntry(daySeq int, localID string) bool {
	entries := d.Schedules[daySeq]
	for i, e := range entries {
		if e.LocalID != localID {
			continue
		}
		if life, ok := e.Life.MarkDeleted(); ok {
			e.Life = life
			d.removedSchedules = append(d.removedSchedules, e)
		}
		d.Schedules[daySeq] = append(entries[:i], entries[i+1:]...)
		return true
	}
	return false
}

// ChecklistPatch carries the optional field updates for a checklist item.
type ChecklistPatch struct {
	Name    *string
	Checked *bool
}

// AddChecklistItem appends a pending, unchecked item and returns it.
func (d *Draft) AddChecklistItem() *domain.ChecklistItem {
	c := &domain.ChecklistItem{
		LocalID: uuid.New().String(),
		Life:    domain.Pending(),
	}
	d.Checklist = append(d.Checklist, c)
	return c
}

// UpdateChecklistItem patches an item in place and returns it, so the
// caller can decide whether the change warrants an immediate server update
// (checkbox toggles on persisted items are pushed right away).
func (d *Draft) UpdateChecklistItem(localID string, patch ChecklistPatch) *domain.ChecklistItem {
	for _, c := range d.Checklist {
		if c.LocalID != localID {
			continue
		}
		if patch.Name != nil {
			c.Name = *patch.Name
		}
		if patch.Checked != nil {
			c.Checked = *patch.Checked
		}
		return c
	}
	return nil
}

// RemoveChecklistItem removes an item from the draft, queueing persisted
// items for server-side deletion. Idempotent per ID.
func (d *Draft) RemoveChecklistItem(localID string) bool {
	for i, c := range d.Checklist {
		if c.LocalID != localID {
			continue
		}
		if life, ok := c.Life.MarkDeleted(); ok {
			c.Life = life
			d.removedChecklist = append(d.removedChecklist, c)
		}
		d.Checklist = append(d.Checklist[:i], d.Checklist[i+1:]...)
		return true
	}
	return false
}

// ScheduleDeletions returns the server IDs of removed persisted schedule
// entries, in removal order.
func (d *Draft) ScheduleDeletions() []int64 {
	return serverIDs(d.removedSchedules, func(e *domain.ScheduleEntry) domain.Lifecycle { return e.Life })
}

// ChecklistDeletions returns the server IDs of removed persisted checklist
// items, in removal order.
func (d *Draft) ChecklistDeletions() []int64 {
	return serverIDs(d.removedChecklist, func(c *domain.ChecklistItem) domain.Lifecycle { return c.Life })
}

func serverIDs[T any](items []T, life func(T) domain.Lifecycle) []int64 {
	var ids []int64
	for _, item := range items {
		if id, ok := life(item).ServerID(); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
