// Package progress aggregates habit outcomes into per-period reports:
// success counts against scaled goals, deltas versus the previous period,
// and heatmap matrices for the analytics views.
package progress

import (
	"fmt"
	"time"

	"github.com/pulsehq/pulse/internal/dates"
	"github.com/pulsehq/pulse/internal/habit"
)

// Row is one habit's line in a period report. HasBaseline is false when the
// previous period recorded no successes, in which case the delta renders as
// "N/A" rather than a misleading +n.
type Row struct {
	Habit       string
	Current     int
	Previous    int
	Goal        int
	HasBaseline bool
	Percent     int
}

// Delta returns the signed change versus the previous period.
func (r Row) Delta() int {
	return r.Current - r.Previous
}

// FormatDelta renders the delta as "+n"/"-n"/"+0", or "N/A" without a
// baseline.
func (r Row) FormatDelta() string {
	if !r.HasBaseline {
		return "N/A"
	}
	return fmt.Sprintf("%+d", r.Delta())
}

// Report is a full period view over every habit.
type Report struct {
	Period   dates.Period
	Window   dates.Window
	Previous dates.Window
	Rows     []Row
}

// CountSuccesses counts succeeded days for one log inside a window.
// Malformed date keys are skipped.
func CountSuccesses(log habit.OutcomeLog, w dates.Window) int {
	n := 0
	for key, outcome := range log {
		if outcome != habit.Succeeded {
			continue
		}
		d, err := dates.ParseKey(key)
		if err != nil {
			continue
		}
		if w.Contains(d) {
			n++
		}
	}
	return n
}

// ScaledGoal converts a weekly goal to the given window's length: the raw
// goal for weekly views, goal/7 scaled by the window's day count for
// monthly and yearly views, truncated toward zero. Daily views scale the
// same way, which floors any weekly goal under 7 to zero.
func ScaledGoal(weeklyGoal int, p dates.Period, w dates.Window) int {
	if p == dates.Weekly {
		return weeklyGoal
	}
	return int(float64(weeklyGoal) / 7 * float64(w.Days()))
}

// percentOf truncates toward zero and reports 0 for an absent goal.
func percentOf(current, goal int) int {
	if goal <= 0 {
		return 0
	}
	return int(float64(current) / float64(goal) * 100)
}

// Build computes the period report for every habit, anchored at ref. Every
// habit gets a row even when its log is empty for the window.
func Build(u *habit.UserData, p dates.Period, ref time.Time) Report {
	cur := dates.PeriodWindow(p, ref)
	prev := dates.PreviousWindow(p, cur)

	rows := make([]Row, 0, len(u.Habits))
	for _, name := range u.Names() {
		log := u.Habits[name]
		goal := ScaledGoal(u.Goals[name], p, cur)
		current := CountSuccesses(log, cur)
		previous := CountSuccesses(log, prev)
		rows = append(rows, Row{
			Habit:       name,
			Current:     current,
			Previous:    previous,
			Goal:        goal,
			HasBaseline: previous > 0,
			Percent:     percentOf(current, goal),
		})
	}
	return Report{Period: p, Window: cur, Previous: prev, Rows: rows}
}

// Cell is one heatmap square.
type Cell int

const (
	NoData Cell = iota
	CellFailed
	CellSucceeded
)

func cellFor(log habit.OutcomeLog, d time.Time) Cell {
	switch log[dates.Key(d)] {
	case habit.Succeeded:
		return CellSucceeded
	case habit.Failed:
		return CellFailed
	default:
		return NoData
	}
}

// DayMatrix is a habit-by-day ternary grid for week and month views.
// Rows follow the habit name order; columns follow the window's days.
type DayMatrix struct {
	Habits []string
	Days   []time.Time
	Cells  [][]Cell
}

// BuildDayMatrix fills the grid for an arbitrary window. Used for the
// weekly (7 columns) and monthly (28 to 31 columns) heatmaps.
func BuildDayMatrix(u *habit.UserData, w dates.Window) DayMatrix {
	var days []time.Time
	for d := dates.Day(w.Start); !d.After(dates.Day(w.End)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	names := u.Names()
	cells := make([][]Cell, len(names))
	for i, name := range names {
		log := u.Habits[name]
		row := make([]Cell, len(days))
		for j, d := range days {
			row[j] = cellFor(log, d)
		}
		cells[i] = row
	}
	return DayMatrix{Habits: names, Days: days, Cells: cells}
}

// MonthMatrix is a habit-by-month success-count grid for the yearly view.
type MonthMatrix struct {
	Habits []string
	Year   int
	Counts [][]int // [habit][month-1]
}

// BuildMonthMatrix counts successes per habit per calendar month of the
// given year.
func BuildMonthMatrix(u *habit.UserData, year int) MonthMatrix {
	names := u.Names()
	counts := make([][]int, len(names))
	for i, name := range names {
		log := u.Habits[name]
		row := make([]int, 12)
		for m := time.January; m <= time.December; m++ {
			first, last := dates.MonthBounds(year, m)
			row[m-1] = CountSuccesses(log, dates.Window{Start: first, End: last})
		}
		counts[i] = row
	}
	return MonthMatrix{Habits: names, Year: year, Counts: counts}
}
