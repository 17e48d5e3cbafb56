package dates

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestShiftMonthRollsOverYears(t *testing.T) {
	tests := []struct {
		ref   time.Time
		delta int
		want  time.Time
	}{
		{day(2025, time.January, 15), -1, day(2024, time.December, 1)},
		{day(2025, time.December, 3), 1, day(2026, time.January, 1)},
		{day(2025, time.June, 30), 0, day(2025, time.June, 1)},
		{day(2025, time.March, 10), -14, day(2024, time.January, 1)},
	}
	for _, tt := range tests {
		got := ShiftMonth(tt.ref, tt.delta)
		if !got.Equal(tt.want) {
			t.Errorf("ShiftMonth(%v, %d) = %v, want %v", tt.ref, tt.delta, got, tt.want)
		}
	}
}

func TestWeekBoundsMondayStart(t *testing.T) {
	tests := []struct {
		ref        time.Time
		wantMonday time.Time
	}{
		{day(2025, time.January, 1), day(2024, time.December, 30)}, // Wednesday
		{day(2025, time.January, 6), day(2025, time.January, 6)},   // Monday
		{day(2025, time.January, 12), day(2025, time.January, 6)},  // Sunday
	}
	for _, tt := range tests {
		monday, sunday := WeekBounds(tt.ref)
		if !monday.Equal(tt.wantMonday) {
			t.Errorf("WeekBounds(%v) monday = %v, want %v", tt.ref, monday, tt.wantMonday)
		}
		if want := tt.wantMonday.AddDate(0, 0, 6); !sunday.Equal(want) {
			t.Errorf("WeekBounds(%v) sunday = %v, want %v", tt.ref, sunday, want)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	if got := DaysInMonth(2024, time.February); got != 29 {
		t.Errorf("leap February = %d, want 29", got)
	}
	if got := DaysInMonth(2025, time.February); got != 28 {
		t.Errorf("February = %d, want 28", got)
	}
	if got := DaysInMonth(2025, time.April); got != 30 {
		t.Errorf("April = %d, want 30", got)
	}
}

func TestYearBounds(t *testing.T) {
	first, last := YearBounds(2024)
	if !first.Equal(day(2024, time.January, 1)) || !last.Equal(day(2024, time.December, 31)) {
		t.Errorf("YearBounds(2024) = %v..%v", first, last)
	}
}

func TestYearLength(t *testing.T) {
	cases := map[int]int{2024: 366, 2025: 365, 2000: 366, 1900: 365}
	for year, want := range cases {
		if got := YearLength(year); got != want {
			t.Errorf("YearLength(%d) = %d, want %d", year, got, want)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	for in, want := range map[string]Period{
		"daily": Daily, "d": Daily, "Weekly": Weekly, "w": Weekly,
		"MONTH": Monthly, "m": Monthly, "yearly": Yearly, "y": Yearly,
	} {
		got, err := ParsePeriod(in)
		if err != nil {
			t.Fatalf("ParsePeriod(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParsePeriod(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParsePeriod("fortnight"); err == nil {
		t.Error("expected error for unknown period")
	}
}

func TestPeriodWindowWeekly(t *testing.T) {
	w := PeriodWindow(Weekly, day(2025, time.January, 8)) // Wednesday
	if !w.Start.Equal(day(2025, time.January, 6)) || !w.End.Equal(day(2025, time.January, 12)) {
		t.Errorf("weekly window = %v..%v", w.Start, w.End)
	}
	if w.Days() != 7 {
		t.Errorf("weekly Days() = %d, want 7", w.Days())
	}
	if !w.Contains(day(2025, time.January, 12)) || w.Contains(day(2025, time.January, 13)) {
		t.Error("Contains is not inclusive on the right boundary")
	}
}

func TestPreviousWindowMonthlyChangesDayCount(t *testing.T) {
	cur := PeriodWindow(Monthly, day(2025, time.March, 15))
	prev := PreviousWindow(Monthly, cur)
	if !prev.Start.Equal(day(2025, time.February, 1)) || !prev.End.Equal(day(2025, time.February, 28)) {
		t.Errorf("previous month = %v..%v", prev.Start, prev.End)
	}
	if cur.Days() != 31 || prev.Days() != 28 {
		t.Errorf("day counts = %d/%d, want 31/28", cur.Days(), prev.Days())
	}
}

func TestPreviousWindowYearly(t *testing.T) {
	cur := PeriodWindow(Yearly, day(2024, time.July, 1))
	prev := PreviousWindow(Yearly, cur)
	if prev.Start.Year() != 2023 || prev.End.Year() != 2023 {
		t.Errorf("previous year window = %v..%v", prev.Start, prev.End)
	}
	if cur.Days() != 366 || prev.Days() != 365 {
		t.Errorf("year day counts = %d/%d", cur.Days(), prev.Days())
	}
}

func TestShiftNavigation(t *testing.T) {
	ref := day(2025, time.January, 31)
	if got := Shift(Weekly, ref, -2); !got.Equal(day(2025, time.January, 17)) {
		t.Errorf("Shift weekly -2 = %v", got)
	}
	if got := Shift(Monthly, ref, 1); !got.Equal(day(2025, time.February, 1)) {
		t.Errorf("Shift monthly +1 = %v", got)
	}
	if got := Shift(Yearly, ref, -1); got.Year() != 2024 {
		t.Errorf("Shift yearly -1 = %v", got)
	}
}
