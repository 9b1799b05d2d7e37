package calendar

import (
	"context"
	"errors"
	"fmt"
)

// ErrWindowExhausted is returned when the fetched holiday window is too
// narrow to cover the requested working-day advance. It indicates a
// configuration or data defect and must never be papered over by
// under-counting.
var ErrWindowExhausted = errors.New("holiday window exhausted before reaching target working day")

// HolidaySource supplies the public holidays for a jurisdiction over a date
// range. The queried range is authoritative only for that range; callers
// must request a window at least as wide as the span they intend to scan.
type HolidaySource interface {
	Holidays(ctx context.Context, jurisdiction string, from, to Date) (HolidaySet, error)
}

// windowDays returns the calendar-day width of the holiday query window for
// an n working-day advance. n*3 covers worst-case holiday density (well
// over the n×2-weeks lower bound: 5 working days always fit inside 15
// calendar days even across Christmas/Easter clusters); the constant 7
// absorbs a leading weekend plus bank-holiday run when n is small.
func windowDays(n int) int {
	return n*3 + 7
}

// AddWorkingDays returns the date n working days after start, skipping
// Saturdays, Sundays and the jurisdiction's public holidays. The start date
// itself is never counted, so n = 0 returns start unchanged regardless of
// whether start is a business day.
//
// The holiday set is fetched exactly once, for the superset window
// [start, start+windowDays(n)]. If the scan would run past that window the
// call fails with ErrWindowExhausted rather than returning a short count.
func AddWorkingDays(ctx context.Context, src HolidaySource, jurisdiction string, start Date, n int) (Date, error) {
	if n < 0 {
		return Date{}, fmt.Errorf("working-day count must be non-negative, got %d", n)
	}
	if n == 0 {
		return start, nil
	}

	windowEnd := start.AddDays(windowDays(n))
	holidays, err := src.Holidays(ctx, jurisdiction, start, windowEnd)
	if err != nil {
		return Date{}, fmt.Errorf("fetching holidays for %s [%s, %s]: %w", jurisdiction, start, windowEnd, err)
	}

	counted := 0
	for d := start.Next(); !d.After(windowEnd); d = d.Next() {
		if d.Weekend() || holidays.Contains(d) {
			continue
		}
		counted++
		if counted == n {
			return d, nil
		}
	}
	return Date{}, fmt.Errorf("%w: advanced %d of %d working days from %s within %d calendar days",
		ErrWindowExhausted, counted, n, start, windowDays(n))
}
