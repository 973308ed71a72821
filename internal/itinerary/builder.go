// Package itinerary derives the day-by-day calendar of a trip from its
// per-city date-range assignments. The derivation is pure and cheap; callers
// recompute it whenever the trip dates or assignments change instead of
// caching the result.
package itinerary

import (
	"github.com/jwhyun/tripnote/internal/domain"
)

// Day is one derived calendar day of a trip. Days are never persisted by
// the client; their identity toward the Trip Service is the 1-based
// sequence number, which shifts when assignments grow or shrink.
type Day struct {
	Date       string // YYYY-MM-DD
	Sequence   int
	Assignment *domain.CityAssignment // nil when no assignment covers the date
}

// Assigned reports whether a city assignment covers this day.
func (d Day) Assigned() bool {
	return d.Assignment != nil
}

// CityLabel returns the display name of the day's city, or "unassigned".
func (d Day) CityLabel() string {
	if d.Assignment == nil {
		return "unassigned"
	}
	if d.Assignment.KoName != "" {
		return d.Assignment.KoName
	}
	return d.Assignment.CityName
}

// BuildDays walks the calendar from startDate to endDate inclusive and
// assigns each date to the first assignment, in insertion order, whose range
// covers it. Assignments missing a city or either date are skipped; they are
// still being filled in by the user. Overlapping ranges are a data-entry
// mistake, not an error: the earlier assignment wins. An unset or malformed
// start or end date yields an empty itinerary.
func BuildDays(startDate, endDate string, assignments []*domain.CityAssignment) []Day {
	start, err := domain.ParseDate(startDate)
	if err != nil {
		return nil
	}
	end, err := domain.ParseDate(endDate)
	if err != nil {
		return nil
	}

	var days []Day
	seq := 1
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := domain.FormatDate(d)
		days = append(days, Day{
			Date:       date,
			Sequence:   seq,
			Assignment: coveringAssignment(assignments, date),
		})
		seq++
	}
	return days
}

// coveringAssignment returns the first complete assignment covering date.
func coveringAssignment(assignments []*domain.CityAssignment, date string) *domain.CityAssignment {
	for _, a := range assignments {
		if !a.Complete() {
			continue
		}
		if a.Covers(date) {
			return a
		}
	}
	return nil
}

// CoverageGaps lists the dates in [startDate, endDate] not covered by any
// complete assignment. Used by submit-readiness checks; an empty result
// means full coverage.
func CoverageGaps(startDate, endDate string, assignments []*domain.CityAssignment) []string {
	var gaps []string
	for _, day := range BuildDays(startDate, endDate, assignments) {
		if !day.Assigned() {
			gaps = append(gaps, day.Date)
		}
	}
	return gaps
}

// AllocatedDays sums the lengths of all complete assignment ranges. When
// ranges overlap this exceeds the trip duration, which the readiness check
// treats the same as a gap.
func AllocatedDays(assignments []*domain.CityAssignment) int {
	total := 0
	for _, a := range assignments {
		if !a.Complete() {
			continue
		}
		s, err := domain.ParseDate(a.StartDate)
		if err != nil {
			continue
		}
		e, err := domain.ParseDate(a.EndDate)
		if err != nil {
			continue
		}
		total += domain.DaysInclusive(s, e)
	}
	return total
}
