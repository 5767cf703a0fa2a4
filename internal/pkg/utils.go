package pkg

import (
	"time"
)

const dayLayout = "2006-01-02"

// DayString renders the calendar day of t in loc. Day boundaries are a local
// wall-clock notion, not UTC.
func DayString(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayLayout)
}

// PreviousDayString renders the calendar day before t's day in loc.
func PreviousDayString(t time.Time, loc *time.Location) string {
	return t.In(loc).AddDate(0, 0, -1).Format(dayLayout)
}

// ValidDayString checks the YYYY-MM-DD shape used for claim and draw days.
func ValidDayString(day string) bool {
	_, err := time.Parse(dayLayout, day)
	return err == nil
}
