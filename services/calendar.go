package services

import (
	"time"

	"salestrack/periods"
)

// Calendar supplies "now" in the configured location. Tests pin it.
type Calendar struct {
	clock func() time.Time
	loc   *time.Location
}

func NewCalendar(clock func() time.Time, loc *time.Location) Calendar {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return Calendar{clock: clock, loc: loc}
}

func (c Calendar) Now() time.Time {
	return c.clock().In(c.loc)
}

func (c Calendar) Today() periods.Keys {
	return periods.KeysFor(c.Now())
}

func (c Calendar) Location() *time.Location {
	return c.loc
}

// In converts t to the calendar's location.
func (c Calendar) In(t time.Time) time.Time {
	return t.In(c.loc)
}
