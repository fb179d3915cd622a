package domain

import (
	"fmt"
	"time"
)

// CivilDate is a calendar day without a time zone
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

// CivilDateOf returns the calendar day of t in t's location
func CivilDateOf(t time.Time) CivilDate {
	y, m, d := t.Date()
	return CivilDate{Year: y, Month: m, Day: d}
}

// ParseCivilDate parses YYYY-MM-DD
func ParseCivilDate(s string) (CivilDate, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return CivilDate{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, s)
	}
	return CivilDateOf(t), nil
}

// IsZero returns true for the zero value
func (d CivilDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Before returns true if d is earlier than other
func (d CivilDate) Before(other CivilDate) bool {
	return d.key() < other.key()
}

// After returns true if d is later than other
func (d CivilDate) After(other CivilDate) bool {
	return d.key() > other.key()
}

// Within returns true if from <= d <= to
func (d CivilDate) Within(from, to CivilDate) bool {
	return !d.Before(from) && !d.After(to)
}

// In returns midnight of the day in loc
func (d CivilDate) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns the day n days later
func (d CivilDate) AddDays(n int) CivilDate {
	return CivilDateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// Weekday returns the day of week
func (d CivilDate) Weekday() time.Weekday {
	return d.In(time.UTC).Weekday()
}

// String formats the date as YYYY-MM-DD
func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d CivilDate) key() int {
	return d.Year*10000 + int(d.Month)*100 + d.Day
}
