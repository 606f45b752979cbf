// Package calendar maps wall-clock time onto campaign days.
//
// Days are calendar dates in the campaign location and the start date is day 1.
// Any instant before the start date resolves to day 0 or below.
package calendar

import (
	"time"

	"ActionCountdown/internal/domain"
)

// Clock returns the current instant.
type Clock func() time.Time

// Calendar resolves the current campaign day.
type Calendar struct {
	start time.Time
	loc   *time.Location
	clock Clock
}

// New builds a calendar anchored at start, interpreted in loc. A nil clock uses
// time.Now and a nil location uses start's location.
func New(start time.Time, loc *time.Location, clock Clock) *Calendar {
	if loc == nil {
		loc = start.Location()
	}
	if clock == nil {
		clock = time.Now
	}
	return &Calendar{start: midnight(start, loc), loc: loc, clock: clock}
}

// Start is midnight of day 1.
func (c *Calendar) Start() time.Time {
	return c.start
}

// CurrentDay returns the campaign day for the calendar clock.
func (c *Calendar) CurrentDay() int {
	return c.DayAt(c.clock())
}

// DayAt returns the campaign day containing t.
func (c *Calendar) DayAt(t time.Time) int {
	return wholeDays(c.start, midnight(t, c.loc)) + 1
}

// DateOf returns the calendar date of the given campaign day.
func (c *Calendar) DateOf(day int) time.Time {
	return c.start.AddDate(0, 0, day-1)
}

// Classify places an item date relative to the current day.
func Classify(date, currentDay int) domain.DayStatus {
	switch {
	case date < currentDay:
		return domain.StatusPast
	case date == currentDay:
		return domain.StatusToday
	default:
		return domain.StatusFuture
	}
}

func midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// wholeDays counts calendar days between two midnights. Dates are compared in
// UTC so daylight-saving shifts do not produce 23 or 25 hour days.
func wholeDays(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
