package domain

import "time"

// SnapshotDay is a server-side day record as last seen; the client never
// creates or deletes these, it only reads the sequence-to-ID mapping.
type SnapshotDay struct {
	ServerID int64
	Sequence int
}

// Snapshot is the last state loaded from the Trip Service for one trip.
// Drafts are built from it and discarded back to it; it is also what the
// local cache persists for offline display.
type Snapshot struct {
	Trip        Trip
	Assignments []CityAssignment
	Days        []SnapshotDay
	Schedules   map[int][]ScheduleEntry // keyed by day sequence
	Checklist   []ChecklistItem
	FetchedAt   time.Time
}

// DayID resolves a day sequence to its server ID as of this snapshot.
func (s *Snapshot) DayID(sequence int) (int64, bool) {
	for _, d := range s.Days {
		if d.Sequence == sequence {
			return d.ServerID, true
		}
	}
	return 0, false
}
