// Package dates provides the calendar arithmetic used by the streak and
// progress engines: month shifting, Monday-start week bounds, and period
// window navigation. All functions are pure; callers thread "today" in
// explicitly so computations stay reproducible in tests.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// ISO is the wire format for calendar-date keys ("YYYY-MM-DD").
const ISO = "2006-01-02"

// Day strips the time-of-day component, keeping the location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Key formats t as an ISO date key.
func Key(t time.Time) string {
	return t.Format(ISO)
}

// ParseKey parses an ISO date key. Malformed keys are the caller's problem;
// the core scanners skip them.
func ParseKey(s string) (time.Time, error) {
	return time.Parse(ISO, s)
}

// ShiftMonth returns the first day of the month delta months from t's month,
// rolling over year boundaries in either direction.
func ShiftMonth(t time.Time, delta int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(delta), 1, 0, 0, 0, 0, t.Location())
}

// WeekBounds returns the Monday and Sunday of the week containing ref,
// treating Monday as the first day of the week (ISO convention).
func WeekBounds(ref time.Time) (monday, sunday time.Time) {
	weekday := int(ref.Weekday())
	if weekday == 0 {
		weekday = 7 // ISO weeks put Sunday last
	}
	monday = Day(ref).AddDate(0, 0, -(weekday - 1))
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// MonthBounds returns the first and last day of the given calendar month.
func MonthBounds(year int, month time.Month) (first, last time.Time) {
	first = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last = first.AddDate(0, 1, -1)
	return first, last
}

// YearBounds returns January 1 and December 31 of the given year.
func YearBounds(year int) (first, last time.Time) {
	first = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	last = time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return first, last
}

// DaysInMonth returns the number of days in the given calendar month,
// accounting for leap-year February.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsLeap reports whether year is a leap year.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// YearLength returns 366 for leap years, 365 otherwise.
func YearLength(year int) int {
	if IsLeap(year) {
		return 366
	}
	return 365
}

// Period is a bounded calendar window kind used for filtering and
// aggregation.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Yearly
)

// ParsePeriod normalizes a period name. Accepts short aliases:
// d=daily, w=weekly, m=monthly, y=yearly.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day", "d":
		return Daily, nil
	case "weekly", "week", "w":
		return Weekly, nil
	case "monthly", "month", "m":
		return Monthly, nil
	case "yearly", "year", "y":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("invalid period %q (valid: daily, weekly, monthly, yearly)", s)
	}
}

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	default:
		return "unknown"
	}
}

// Label returns the capitalized display name ("Daily", "Weekly", ...).
func (p Period) Label() string {
	s := p.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Window is an inclusive calendar date range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t's calendar date falls within the window.
func (w Window) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(Day(w.Start)) && !d.After(Day(w.End))
}

// Days returns the number of calendar days in the window, inclusive.
func (w Window) Days() int {
	return int(Day(w.End).Sub(Day(w.Start)).Hours()/24) + 1
}

// PeriodWindow returns the window of the given kind containing ref:
// the day itself, the Mon–Sun week, the calendar month, or the calendar year.
func PeriodWindow(p Period, ref time.Time) Window {
	switch p {
	case Daily:
		d := Day(ref)
		return Window{Start: d, End: d}
	case Weekly:
		start, end := WeekBounds(ref)
		return Window{Start: start, End: end}
	case Monthly:
		start, end := MonthBounds(ref.Year(), ref.Month())
		return Window{Start: start, End: end}
	default: // Yearly
		start, end := YearBounds(ref.Year())
		return Window{Start: start, End: end}
	}
}

// PreviousWindow returns the immediately preceding window of the same kind:
// the previous day, week, calendar month, or calendar year. For months and
// years the preceding window may have a different day count.
func PreviousWindow(p Period, w Window) Window {
	switch p {
	case Daily:
		d := Day(w.Start).AddDate(0, 0, -1)
		return Window{Start: d, End: d}
	case Weekly:
		return Window{Start: w.Start.AddDate(0, 0, -7), End: w.Start.AddDate(0, 0, -1)}
	case Monthly:
		prev := ShiftMonth(w.Start, -1)
		start, end := MonthBounds(prev.Year(), prev.Month())
		return Window{Start: start, End: end}
	default: // Yearly
		start, end := YearBounds(w.Start.Year() - 1)
		return Window{Start: start, End: end}
	}
}

// Shift moves a reference date by offset periods of the given kind. Used for
// previous/next navigation in the analytics views.
func Shift(p Period, ref time.Time, offset int) time.Time {
	switch p {
	case Daily:
		return Day(ref).AddDate(0, 0, offset)
	case Weekly:
		return Day(ref).AddDate(0, 0, 7*offset)
	case Monthly:
		return ShiftMonth(ref, offset)
	default: // Yearly
		return time.Date(ref.Year()+offset, time.January, 1, 0, 0, 0, 0, ref.Location())
	}
}
