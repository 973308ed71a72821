package domain

import "fmt"

// Trip is the top-level travel record. Dates are raw YYYY-MM-DD strings as
// entered; they are validated at submit readiness, not on every keystroke.
type Trip struct {
	ID        int64
	Title     string
	StartDate string
	EndDate   string
	UserID    int64
}

// Validate checks that both dates parse and start does not follow end.
func (t *Trip) Validate() error {
	start, err := ParseDate(t.StartDate)
	if err != nil {
		return fmt.Errorf("start date %q: %w", t.StartDate, err)
	}
	end, err := ParseDate(t.EndDate)
	if err != nil {
		return fmt.Errorf("end date %q: %w", t.EndDate, err)
	}
	if end.Before(start) {
		return fmt.Errorf("trip ends (%s) before it starts (%s)", t.EndDate, t.StartDate)
	}
	return nil
}

// DurationDays returns the trip length in calendar days, or 0 when either
// date is unset or malformed.
func (t *Trip) DurationDays() int {
	start, err := ParseDate(t.StartDate)
	if err != nil {
		return 0
	}
	end, err := ParseDate(t.EndDate)
	if err != nil {
		return 0
	}
	return DaysInclusive(start, end)
}

// CityAssignment binds one city to a date range within the trip. LocalID is
// a client-generated UUID; ServerID is set once the assignment has been
// loaded from (or persisted by) the Trip Service. CityID is nil until the
// user picks a city from the catalog.
type CityAssignment struct {
	LocalID   string
	ServerID  int64
	CityID    *int64
	CityName  string // romanized, the selection value
	KoName    string // display name recorded alongside the selection
	StartDate string
	EndDate   string
}

// Complete reports whether the assignment has a city and both dates, the
// condition for it to contribute days to the itinerary.
func (a *CityAssignment) Complete() bool {
	return a.CityName != "" && a.StartDate != "" && a.EndDate != ""
}

// Covers reports whether date (YYYY-MM-DD) falls inside the assignment's
// range, both ends inclusive. Malformed or missing range dates never match.
func (a *CityAssignment) Covers(date string) bool {
	d, err := ParseDate(date)
	if err != nil {
		return false
	}
	start, err := ParseDate(a.StartDate)
	if err != nil {
		return false
	}
	end, err := ParseDate(a.EndDate)
	if err != nil {
		return false
	}
	return !d.Before(start) && !d.After(end)
}
