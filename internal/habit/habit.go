// Package habit defines the per-user data blob and the habit operations
// that mutate it. The blob is serialized as one JSON document per user;
// habits, goals, and streak records are parallel maps keyed by habit name.
package habit

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pulsehq/pulse/internal/dates"
	"github.com/pulsehq/pulse/internal/journal"
	"github.com/pulsehq/pulse/internal/tasks"
)

// Outcome is a recorded result for a habit on a calendar date. Absence of a
// key means the day is unmarked.
type Outcome string

const (
	Succeeded Outcome = "succeeded"
	Failed    Outcome = "failed"
)

// OutcomeLog maps ISO date keys to outcomes for one habit.
type OutcomeLog map[string]Outcome

// StreakRecord is the cached streak state written back after each change.
type StreakRecord struct {
	Current    int       `json:"current"`
	Longest    int       `json:"longest"`
	LastUpdate time.Time `json:"last_update"`
}

// UserData is the full blob persisted per user.
type UserData struct {
	Habits  map[string]OutcomeLog   `json:"habits"`
	Goals   map[string]int          `json:"goals"`
	Streaks map[string]StreakRecord `json:"streaks"`
	Journal journal.Book            `json:"journal"`
	Todo    tasks.List              `json:"todo"`
}

var (
	ErrEmptyName  = errors.New("habit name cannot be empty")
	ErrExists     = errors.New("habit already exists")
	ErrNotFound   = errors.New("habit not found")
	ErrBadGoal    = errors.New("goal must be at least 1 per week")
	ErrBadOutcome = errors.New("unknown outcome")
)

// NewUserData returns an empty blob with all maps initialized.
func NewUserData() *UserData {
	u := &UserData{}
	u.EnsureMaps()
	return u
}

// EnsureMaps initializes any nil sub-maps. Called after deserialization so
// older or partial blobs never cause nil map writes.
func (u *UserData) EnsureMaps() {
	if u.Habits == nil {
		u.Habits = make(map[string]OutcomeLog)
	}
	if u.Goals == nil {
		u.Goals = make(map[string]int)
	}
	if u.Streaks == nil {
		u.Streaks = make(map[string]StreakRecord)
	}
	if u.Journal == nil {
		u.Journal = journal.Book{}
	}
	for name, log := range u.Habits {
		if log == nil {
			u.Habits[name] = OutcomeLog{}
		}
	}
}

// Names returns habit names sorted for stable display order.
func (u *UserData) Names() []string {
	names := make([]string, 0, len(u.Habits))
	for name := range u.Habits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddHabit creates a habit with an empty log and a weekly goal.
func (u *UserData) AddHabit(name string, goal int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if _, ok := u.Habits[name]; ok {
		return fmt.Errorf("%w: %s", ErrExists, name)
	}
	if goal < 1 {
		return ErrBadGoal
	}
	u.Habits[name] = OutcomeLog{}
	u.Goals[name] = goal
	u.Streaks[name] = StreakRecord{}
	return nil
}

// RemoveHabit deletes a habit along with its goal and streak record.
func (u *UserData) RemoveHabit(name string) error {
	if _, ok := u.Habits[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(u.Habits, name)
	delete(u.Goals, name)
	delete(u.Streaks, name)
	return nil
}

// RenameHabit moves the log, goal, and streak record under a new key.
// Used by the storage migration; no-op if the old key is absent or the new
// key is taken.
func (u *UserData) RenameHabit(from, to string) {
	log, ok := u.Habits[from]
	if !ok {
		return
	}
	if _, taken := u.Habits[to]; taken {
		return
	}
	u.Habits[to] = log
	delete(u.Habits, from)
	if g, ok := u.Goals[from]; ok {
		u.Goals[to] = g
		delete(u.Goals, from)
	}
	if s, ok := u.Streaks[from]; ok {
		u.Streaks[to] = s
		delete(u.Streaks, from)
	}
}

// SetGoal updates the weekly goal for an existing habit.
func (u *UserData) SetGoal(name string, goal int) error {
	if _, ok := u.Habits[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if goal < 1 {
		return ErrBadGoal
	}
	u.Goals[name] = goal
	return nil
}

// Goal returns the weekly goal for a habit, 0 when unset.
func (u *UserData) Goal(name string) int {
	return u.Goals[name]
}

// Outcome returns the recorded outcome for a habit on a date, if any.
func (u *UserData) Outcome(name string, date time.Time) (Outcome, bool) {
	log, ok := u.Habits[name]
	if !ok {
		return "", false
	}
	o, ok := log[dates.Key(date)]
	return o, ok
}

// Toggle advances the outcome for a date through the cycle
// unmarked, succeeded, failed, unmarked. Returns the new state, with
// ok=false meaning the day is now unmarked.
func (u *UserData) Toggle(name string, date time.Time) (Outcome, bool, error) {
	log, ok := u.Habits[name]
	if !ok {
		return "", false, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	key := dates.Key(date)
	switch log[key] {
	case "":
		log[key] = Succeeded
		return Succeeded, true, nil
	case Succeeded:
		log[key] = Failed
		return Failed, true, nil
	default:
		delete(log, key)
		return "", false, nil
	}
}

// SetOutcome records an explicit outcome for a date, or clears the day when
// outcome is empty.
func (u *UserData) SetOutcome(name string, date time.Time, outcome Outcome) error {
	log, ok := u.Habits[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	key := dates.Key(date)
	switch outcome {
	case "":
		delete(log, key)
	case Succeeded, Failed:
		log[key] = outcome
	default:
		return fmt.Errorf("%w: %q", ErrBadOutcome, outcome)
	}
	return nil
}

// Color returns a stable display color for a habit name: the first six hex
// digits of its md5, prefixed with '#'. Purely cosmetic.
func Color(name string) string {
	sum := md5.Sum([]byte(name))
	return "#" + hex.EncodeToString(sum[:])[:6]
}
