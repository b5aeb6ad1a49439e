package timeutil

import (
	"time"
)

const DefaultTimezone = "Asia/Manila"

// Clock supplies the current instant. Components take one instead of calling
// time.Now so windows and expirations can be pinned in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

func NewSystemClock(loc *time.Location) Clock {
	return &systemClock{loc: loc}
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// FixedClock always reports the same instant.
type FixedClock struct {
	At time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.At
}

// Advance moves the fixed clock forward.
func (c *FixedClock) Advance(d time.Duration) {
	c.At = c.At.Add(d)
}

// LoadLocation resolves the configured zone, falling back to DefaultTimezone
// and then to a fixed UTC+8 offset when tzdata is missing.
func LoadLocation(name string) *time.Location {
	if name == "" {
		name = DefaultTimezone
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.FixedZone("PHT", 8*60*60)
}

// DateOf truncates t to midnight of its calendar day in loc.
func DateOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// InZone interprets a stored timestamp in loc. Values that come back from the
// database as UTC without zone information are treated as wall-clock time in
// loc rather than converted.
func InZone(t time.Time, loc *time.Location) time.Time {
	if t.Location() == time.UTC {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
	}
	return t.In(loc)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return DateOf(a, loc).Equal(DateOf(b, loc))
}

// MonthStart returns midnight of the first day of t's month in loc.
func MonthStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
}

// AddDays moves a calendar date by n days without DST drift.
func AddDays(date time.Time, n int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day()+n, 0, 0, 0, 0, date.Location())
}

// CalendarDate normalizes a stored date or timestamp to its calendar day in loc.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	return DateOf(InZone(t, loc), loc)
}
