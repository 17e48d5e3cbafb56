package progress

import (
	"testing"
	"time"

	"github.com/pulsehq/pulse/internal/dates"
	"github.com/pulsehq/pulse/internal/habit"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCountSuccessesSkipsFailuresAndBadKeys(t *testing.T) {
	log := habit.OutcomeLog{
		"2025-01-06": habit.Succeeded,
		"2025-01-07": habit.Failed,
		"2025-01-08": habit.Succeeded,
		"2025-01-20": habit.Succeeded, // outside the window
		"junk":       habit.Succeeded,
	}
	w := dates.PeriodWindow(dates.Weekly, day(2025, time.January, 8))
	if got := CountSuccesses(log, w); got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
}

func TestScaledGoal(t *testing.T) {
	jan := dates.PeriodWindow(dates.Monthly, day(2025, time.January, 15))  // 31 days
	feb24 := dates.PeriodWindow(dates.Monthly, day(2024, time.February, 1)) // 29 days
	year25 := dates.PeriodWindow(dates.Yearly, day(2025, time.June, 1))     // 365 days
	year24 := dates.PeriodWindow(dates.Yearly, day(2024, time.June, 1))     // 366 days

	tests := []struct {
		goal   int
		period dates.Period
		window dates.Window
		want   int
	}{
		{5, dates.Weekly, dates.PeriodWindow(dates.Weekly, day(2025, time.January, 8)), 5},
		{7, dates.Monthly, jan, 31},
		{3, dates.Monthly, jan, 13},  // 3/7*31 = 13.28 truncated
		{3, dates.Monthly, feb24, 12}, // 3/7*29 = 12.43 truncated
		{7, dates.Yearly, year25, 365},
		{7, dates.Yearly, year24, 366},
		{2, dates.Yearly, year25, 104}, // 2/7*365 = 104.28 truncated
		{0, dates.Monthly, jan, 0},
	}
	for _, tt := range tests {
		if got := ScaledGoal(tt.goal, tt.period, tt.window); got != tt.want {
			t.Errorf("ScaledGoal(%d, %v, %d days) = %d, want %d",
				tt.goal, tt.period, tt.window.Days(), got, tt.want)
		}
	}
}

func TestBuildRowsAndDelta(t *testing.T) {
	u := habit.NewUserData()
	u.AddHabit("Read", 5)
	u.AddHabit("Run", 3)

	// Current week (Jan 6-12): Read succeeds 3 times, Run once.
	for _, d := range []int{6, 7, 9} {
		u.SetOutcome("Read", day(2025, time.January, d), habit.Succeeded)
	}
	u.SetOutcome("Run", day(2025, time.January, 10), habit.Succeeded)
	// Previous week (Dec 30 - Jan 5): Read succeeds twice, Run never.
	u.SetOutcome("Read", day(2024, time.December, 31), habit.Succeeded)
	u.SetOutcome("Read", day(2025, time.January, 2), habit.Succeeded)

	report := Build(u, dates.Weekly, day(2025, time.January, 8))
	if len(report.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(report.Rows))
	}

	read := report.Rows[0]
	if read.Habit != "Read" || read.Current != 3 || read.Previous != 2 {
		t.Errorf("Read row = %+v", read)
	}
	if !read.HasBaseline || read.FormatDelta() != "+1" {
		t.Errorf("Read delta = %q, HasBaseline=%v", read.FormatDelta(), read.HasBaseline)
	}
	if read.Percent != 60 { // 3/5
		t.Errorf("Read percent = %d, want 60", read.Percent)
	}

	run := report.Rows[1]
	if run.HasBaseline || run.FormatDelta() != "N/A" {
		t.Errorf("Run without baseline should render N/A, got %q", run.FormatDelta())
	}
	if run.Percent != 33 { // 1/3 truncated
		t.Errorf("Run percent = %d, want 33", run.Percent)
	}
}

func TestBuildIncludesHabitsWithEmptyLogs(t *testing.T) {
	u := habit.NewUserData()
	u.AddHabit("Idle", 4)
	report := Build(u, dates.Monthly, day(2025, time.March, 10))
	if len(report.Rows) != 1 {
		t.Fatalf("rows = %d", len(report.Rows))
	}
	row := report.Rows[0]
	if row.Current != 0 || row.Previous != 0 || row.Percent != 0 || row.HasBaseline {
		t.Errorf("empty-log row = %+v", row)
	}
	if row.Goal != 17 { // 4/7*31 = 17.71 truncated
		t.Errorf("scaled goal = %d, want 17", row.Goal)
	}
}

func TestZeroGoalPercentIsZero(t *testing.T) {
	u := habit.NewUserData()
	u.AddHabit("NoGoal", 1)
	u.Goals["NoGoal"] = 0
	u.SetOutcome("NoGoal", day(2025, time.January, 8), habit.Succeeded)
	report := Build(u, dates.Weekly, day(2025, time.January, 8))
	if report.Rows[0].Percent != 0 {
		t.Errorf("percent with zero goal = %d", report.Rows[0].Percent)
	}
}

func TestBuildDayMatrixWeek(t *testing.T) {
	u := habit.NewUserData()
	u.AddHabit("Read", 5)
	u.SetOutcome("Read", day(2025, time.January, 6), habit.Succeeded)
	u.SetOutcome("Read", day(2025, time.January, 7), habit.Failed)

	m := BuildDayMatrix(u, dates.PeriodWindow(dates.Weekly, day(2025, time.January, 8)))
	if len(m.Days) != 7 || len(m.Cells) != 1 {
		t.Fatalf("matrix shape %dx%d", len(m.Cells), len(m.Days))
	}
	row := m.Cells[0]
	if row[0] != CellSucceeded || row[1] != CellFailed || row[2] != NoData {
		t.Errorf("cells = %v", row)
	}
}

func TestBuildDayMatrixMonthLength(t *testing.T) {
	u := habit.NewUserData()
	u.AddHabit("Read", 5)
	m := BuildDayMatrix(u, dates.PeriodWindow(dates.Monthly, day(2024, time.February, 10)))
	if len(m.Days) != 29 {
		t.Errorf("leap February columns = %d, want 29", len(m.Days))
	}
}

func TestBuildMonthMatrix(t *testing.T) {
	u := habit.NewUserData()
	u.AddHabit("Run", 3)
	u.SetOutcome("Run", day(2025, time.March, 1), habit.Succeeded)
	u.SetOutcome("Run", day(2025, time.March, 15), habit.Succeeded)
	u.SetOutcome("Run", day(2025, time.July, 4), habit.Succeeded)
	u.SetOutcome("Run", day(2025, time.July, 5), habit.Failed)

	m := BuildMonthMatrix(u, 2025)
	if len(m.Counts) != 1 || len(m.Counts[0]) != 12 {
		t.Fatalf("matrix shape wrong: %+v", m)
	}
	if m.Counts[0][time.March-1] != 2 {
		t.Errorf("March count = %d, want 2", m.Counts[0][time.March-1])
	}
	if m.Counts[0][time.July-1] != 1 {
		t.Errorf("July count = %d, want 1", m.Counts[0][time.July-1])
	}
	if m.Counts[0][time.January-1] != 0 {
		t.Errorf("January count = %d, want 0", m.Counts[0][time.January-1])
	}
}
