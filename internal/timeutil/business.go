package timeutil

import (
	"time"
)

// Loc is the shop's local timezone. Purchase dates, payment dates and
// analytics windows are all interpreted in it.
var Loc *time.Location

func init() {
	var err error
	Loc, err = time.LoadLocation("America/New_York")
	if err != nil {
		// Fallback: fixed zone if the tz database is unavailable
		Loc = time.FixedZone("EST", -5*60*60)
	}
}

// Now returns the current time in the shop timezone
func Now() time.Time {
	return time.Now().In(Loc)
}

// ToLocal converts any time to the shop timezone
func ToLocal(t time.Time) time.Time {
	return t.In(Loc)
}

// ParseLocal parses a time string in the shop timezone
func ParseLocal(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, Loc)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// StartOfDay returns the start of day (00:00:00) for the given time
func StartOfDay(t time.Time) time.Time {
	l := t.In(Loc)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, Loc)
}

// StartOfWeek returns the most recent Monday 00:00:00
func StartOfWeek(t time.Time) time.Time {
	l := StartOfDay(t)
	offset := (int(l.Weekday()) + 6) % 7
	return l.AddDate(0, 0, -offset)
}

// StartOfMonth returns the first of the month at 00:00:00
func StartOfMonth(t time.Time) time.Time {
	l := t.In(Loc)
	return time.Date(l.Year(), l.Month(), 1, 0, 0, 0, 0, Loc)
}

// StartOfYear returns January 1st at 00:00:00
func StartOfYear(t time.Time) time.Time {
	l := t.In(Loc)
	return time.Date(l.Year(), 1, 1, 0, 0, 0, 0, Loc)
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
)
