package application

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date layout used throughout the portal.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD value in UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

// FormatDate renders a time as a YYYY-MM-DD value.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// InclusiveDays returns the number of calendar days spanned by the range,
// counting both endpoints. Same-day ranges count as one day. Returns zero
// when to precedes from.
func InclusiveDays(from, to time.Time) int {
	from = from.UTC().Truncate(24 * time.Hour)
	to = to.UTC().Truncate(24 * time.Hour)
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}
