// Package calendar provides business-day arithmetic over jurisdiction
// public-holiday calendars. Holiday data is fetched through the
// HolidaySource abstraction so the calculator itself stays pure.
package calendar

import (
	"fmt"
	"time"
)

// Date is a plain year-month-day value with no time or zone component.
// It is the unit of holiday comparison and scheduling throughout the service.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses an ISO-8601 date string (2006-01-02).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns the date at midnight UTC. UTC keeps day arithmetic immune
// to DST transitions.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	return DateOf(d.Time().AddDate(0, 0, 1))
}

// AddDays returns the date n calendar days after d.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Weekend reports whether d falls on a Saturday or Sunday.
func (d Date) Weekend() bool {
	wd := d.Time().Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// String formats d as ISO-8601 (2006-01-02).
func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}

// MarshalJSON encodes d as an ISO-8601 string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes an ISO-8601 string into d.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date JSON %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// HolidaySet is a set of public-holiday dates for a jurisdiction over a
// queried range. The map representation rules out duplicate dates.
type HolidaySet map[Date]struct{}

// Contains reports whether d is in the set.
func (h HolidaySet) Contains(d Date) bool {
	_, ok := h[d]
	return ok
}

// Add inserts d into the set.
func (h HolidaySet) Add(d Date) {
	h[d] = struct{}{}
}
