// Package streak computes current and longest success streaks from a
// habit's outcome log.
//
// The current streak is lenient about today: an unmarked today neither
// extends nor breaks the streak, while a failed today ends it at zero.
// Every day before today must be marked succeeded to count. The backward
// walk is bounded by the earliest parseable date in the log, so a habit
// with no history never loops.
//
// The longest streak scans forward over marked days up to and including
// today; unmarked gaps and failed days both reset the run. Future-dated
// entries are ignored by both computations.
package streak

import (
	"time"

	"github.com/pulsehq/pulse/internal/dates"
	"github.com/pulsehq/pulse/internal/habit"
)

// Current returns the length of the success streak ending at today.
func Current(log habit.OutcomeLog, today time.Time) int {
	floor, ok := earliest(log)
	if !ok {
		return 0
	}
	today = dates.Day(today)

	count := 0
	cursor := today
	switch log[dates.Key(today)] {
	case habit.Failed:
		return 0
	case habit.Succeeded:
		count = 1
		cursor = today.AddDate(0, 0, -1)
	default:
		// Unmarked today is skipped, not broken.
		cursor = today.AddDate(0, 0, -1)
	}

	for !cursor.Before(floor) {
		if log[dates.Key(cursor)] != habit.Succeeded {
			break
		}
		count++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return count
}

// Longest returns the longest success streak on record, considering only
// entries dated today or earlier.
func Longest(log habit.OutcomeLog, today time.Time) int {
	floor, ok := earliest(log)
	if !ok {
		return 0
	}
	today = dates.Day(today)
	if floor.After(today) {
		return 0
	}

	longest, run := 0, 0
	for d := floor; !d.After(today); d = d.AddDate(0, 0, 1) {
		if log[dates.Key(d)] == habit.Succeeded {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

// Compute returns a fresh record for one log.
func Compute(log habit.OutcomeLog, today time.Time) habit.StreakRecord {
	return habit.StreakRecord{
		Current:    Current(log, today),
		Longest:    Longest(log, today),
		LastUpdate: today,
	}
}

// Refresh recomputes and caches the streak record for one habit.
func Refresh(u *habit.UserData, name string, today time.Time) {
	log, ok := u.Habits[name]
	if !ok {
		return
	}
	u.Streaks[name] = Compute(log, today)
}

// RefreshAll recomputes streak records for every habit in the blob.
func RefreshAll(u *habit.UserData, today time.Time) {
	for name, log := range u.Habits {
		u.Streaks[name] = Compute(log, today)
	}
}

// earliest returns the earliest parseable date key in the log. Malformed
// keys are skipped; a log with none reports ok=false.
func earliest(log habit.OutcomeLog) (time.Time, bool) {
	var min time.Time
	found := false
	for key := range log {
		d, err := dates.ParseKey(key)
		if err != nil {
			continue
		}
		if !found || d.Before(min) {
			min = d
			found = true
		}
	}
	return min, found
}
