package domain

import "strings"

// ScheduleEntry is a single activity attached to one itinerary day. Days
// are addressed by sequence number; the server-side day record is resolved
// only at submit time.
type ScheduleEntry struct {
	LocalID   string
	Life      Lifecycle
	Content   string
	StartTime string // HH:MM, optional
	EndTime   string // HH:MM, optional
	PlaceID   *int64
}

// Blank reports whether the entry has no content worth persisting.
func (e *ScheduleEntry) Blank() bool {
	return strings.TrimSpace(e.Content) == ""
}

// ChecklistItem is a packing-list entry scoped to the whole trip.
type ChecklistItem struct {
	LocalID string
	Life    Lifecycle
	Name    string
	Checked bool
}

// Blank reports whether the item has no name worth persisting.
func (c *ChecklistItem) Blank() bool {
	return strings.TrimSpace(c.Name) == ""
}
