package domain

import (
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string. Timestamps with a time
// component (RFC 3339) are accepted; only the date part is kept.
func ParseDate(s string) (time.Time, error) {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	return time.Parse(DateLayout, s)
}

// FormatDate renders t in the wire date format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysInclusive returns the number of calendar days in [start, end],
// or 0 when end precedes start.
func DaysInclusive(start, end time.Time) int {
	d := int(end.Sub(start).Hours()/24) + 1
	if d < 0 {
		return 0
	}
	return d
}
