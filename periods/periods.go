// Package periods derives the day, week and month keys used as document
// identifiers for commitments, reports and stats rollups.
//
// Week numbering is the stored heuristic ceil((dayOfYear + weekday(Jan 1)) / 7)
// and is NOT ISO-8601. Keys already persisted depend on it, so it must stay
// exactly as is.
package periods

import (
	"fmt"
	"time"
)

const dayKeyLayout = "2006-01-02"

// DayKey formats t as YYYY-MM-DD in t's location.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// MonthKey formats t as YYYY-MM.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// WeekNumber returns the week of the year for the calendar date of t.
// The time of day is ignored.
func WeekNumber(t time.Time) int {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	offset := t.YearDay() + int(jan1.Weekday())
	return (offset + 6) / 7
}

// WeekKey formats t as YYYY-Www using WeekNumber and the calendar year of t.
func WeekKey(t time.Time) string {
	return fmt.Sprintf("%04d-W%02d", t.Year(), WeekNumber(t))
}

// Keys bundles every period key of a single instant.
type Keys struct {
	Day        string
	Week       string
	Month      string
	WeekNumber int
}

func KeysFor(t time.Time) Keys {
	return Keys{
		Day:        DayKey(t),
		Week:       WeekKey(t),
		Month:      MonthKey(t),
		WeekNumber: WeekNumber(t),
	}
}

// ParseDayKey parses a YYYY-MM-DD key as midnight in loc.
func ParseDayKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dayKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", key)
	}
	return t, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// DayBounds returns the first and last millisecond of t's day.
func DayBounds(t time.Time) (time.Time, time.Time) {
	return startOfDay(t), endOfDay(t)
}

// WeekBounds returns Monday 00:00 through Sunday 23:59:59.999 of t's week.
// Used for rollups created by report submission.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	weekday := int(t.Weekday())
	diff := 1 - weekday
	if weekday == 0 {
		diff = -6
	}
	monday := startOfDay(t.AddDate(0, 0, diff))
	return monday, endOfDay(monday.AddDate(0, 0, 6))
}

// CalendarWeekBounds returns Sunday 00:00 through Saturday 23:59:59.999 of t's
// week. Used by the migration, which always seeded weeks this way.
func CalendarWeekBounds(t time.Time) (time.Time, time.Time) {
	sunday := startOfDay(t.AddDate(0, 0, -int(t.Weekday())))
	return sunday, endOfDay(sunday.AddDate(0, 0, 6))
}

// MonthBounds returns the first and last millisecond of t's month.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first, endOfDay(first.AddDate(0, 1, -1))
}
