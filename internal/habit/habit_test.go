package habit

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddHabitValidation(t *testing.T) {
	u := NewUserData()
	if err := u.AddHabit("  ", 3); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty name: got %v", err)
	}
	if err := u.AddHabit("Read", 0); !errors.Is(err, ErrBadGoal) {
		t.Errorf("zero goal: got %v", err)
	}
	if err := u.AddHabit("Read", 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := u.AddHabit("Read", 5); !errors.Is(err, ErrExists) {
		t.Errorf("duplicate: got %v", err)
	}
	if u.Goal("Read") != 3 {
		t.Errorf("goal = %d, want 3", u.Goal("Read"))
	}
}

func TestRemoveHabitCleansAllMaps(t *testing.T) {
	u := NewUserData()
	u.AddHabit("Run", 4)
	u.Streaks["Run"] = StreakRecord{Current: 2, Longest: 5}

	if err := u.RemoveHabit("Run"); err != nil {
		t.Fatal(err)
	}
	if _, ok := u.Habits["Run"]; ok {
		t.Error("log not removed")
	}
	if _, ok := u.Goals["Run"]; ok {
		t.Error("goal not removed")
	}
	if _, ok := u.Streaks["Run"]; ok {
		t.Error("streak record not removed")
	}
	if err := u.RemoveHabit("Run"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second remove: got %v", err)
	}
}

func TestToggleCycle(t *testing.T) {
	u := NewUserData()
	u.AddHabit("Meditate", 7)
	d := day(2025, time.January, 10)

	o, marked, err := u.Toggle("Meditate", d)
	if err != nil || !marked || o != Succeeded {
		t.Fatalf("first toggle = %v/%v/%v", o, marked, err)
	}
	o, marked, _ = u.Toggle("Meditate", d)
	if !marked || o != Failed {
		t.Fatalf("second toggle = %v/%v", o, marked)
	}
	_, marked, _ = u.Toggle("Meditate", d)
	if marked {
		t.Fatal("third toggle should clear the day")
	}
	if _, ok := u.Outcome("Meditate", d); ok {
		t.Fatal("day should be unmarked after full cycle")
	}
}

func TestToggleUnknownHabit(t *testing.T) {
	u := NewUserData()
	if _, _, err := u.Toggle("ghost", day(2025, time.January, 1)); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v", err)
	}
}

func TestSetOutcome(t *testing.T) {
	u := NewUserData()
	u.AddHabit("Write", 5)
	d := day(2025, time.February, 2)

	if err := u.SetOutcome("Write", d, Failed); err != nil {
		t.Fatal(err)
	}
	if o, _ := u.Outcome("Write", d); o != Failed {
		t.Errorf("outcome = %v", o)
	}
	if err := u.SetOutcome("Write", d, ""); err != nil {
		t.Fatal(err)
	}
	if _, ok := u.Outcome("Write", d); ok {
		t.Error("day should be cleared")
	}
	if err := u.SetOutcome("Write", d, Outcome("maybe")); !errors.Is(err, ErrBadOutcome) {
		t.Errorf("got %v", err)
	}
}

func TestRenameHabitMovesEverything(t *testing.T) {
	u := NewUserData()
	u.AddHabit("Sleeping before 12", 6)
	u.SetOutcome("Sleeping before 12", day(2025, time.January, 3), Succeeded)
	u.Streaks["Sleeping before 12"] = StreakRecord{Current: 1, Longest: 4}

	u.RenameHabit("Sleeping before 12", "Sleep")

	if _, ok := u.Habits["Sleeping before 12"]; ok {
		t.Error("old key still present")
	}
	if o, _ := u.Outcome("Sleep", day(2025, time.January, 3)); o != Succeeded {
		t.Error("log did not follow the rename")
	}
	if u.Goal("Sleep") != 6 {
		t.Error("goal did not follow the rename")
	}
	if u.Streaks["Sleep"].Longest != 4 {
		t.Error("streak record did not follow the rename")
	}

	// Renaming onto an occupied key must not clobber it.
	u.AddHabit("Run", 2)
	u.RenameHabit("Run", "Sleep")
	if u.Goal("Sleep") != 6 {
		t.Error("occupied target was overwritten")
	}
}

func TestEnsureMapsRepairsPartialBlob(t *testing.T) {
	raw := []byte(`{"habits":{"Read":null}}`)
	var u UserData
	if err := json.Unmarshal(raw, &u); err != nil {
		t.Fatal(err)
	}
	u.EnsureMaps()

	if u.Goals == nil || u.Streaks == nil || u.Journal == nil {
		t.Fatal("sub-maps not initialized")
	}
	if u.Habits["Read"] == nil {
		t.Fatal("nil habit log not repaired")
	}
	if err := u.SetOutcome("Read", day(2025, time.January, 1), Succeeded); err != nil {
		t.Fatalf("write after repair: %v", err)
	}
}

func TestNamesSorted(t *testing.T) {
	u := NewUserData()
	u.AddHabit("Zumba", 1)
	u.AddHabit("Art", 1)
	u.AddHabit("Meditate", 1)
	names := u.Names()
	want := []string{"Art", "Meditate", "Zumba"}
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}

func TestColorStable(t *testing.T) {
	a := Color("Read")
	b := Color("Read")
	if a != b {
		t.Fatalf("color not stable: %s vs %s", a, b)
	}
	if len(a) != 7 || a[0] != '#' {
		t.Fatalf("color format: %s", a)
	}
}
