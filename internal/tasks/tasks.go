// Package tasks manages the to-do list stored in the user blob.
package tasks

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pulsehq/pulse/internal/dates"
)

var (
	ErrEmptyText = errors.New("task text cannot be empty")
	ErrNotFound  = errors.New("task not found")
)

// Task is a single to-do item. CompletedAt is nil while the task is open.
type Task struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Done        bool       `json:"done"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// New creates an open task with a fresh ID.
func New(text string, now time.Time) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmptyText
	}
	return Task{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: now,
	}, nil
}

// Complete marks the task done at the given time. Completing an already
// done task refreshes its completion time.
func (t *Task) Complete(now time.Time) {
	t.Done = true
	t.CompletedAt = &now
}

// Uncomplete reopens the task and clears its completion time.
func (t *Task) Uncomplete() {
	t.Done = false
	t.CompletedAt = nil
}

// AnchorDate is the date a task belongs to for period filtering: the
// completion date for done tasks, the creation date otherwise.
func (t Task) AnchorDate() time.Time {
	if t.Done && t.CompletedAt != nil {
		return *t.CompletedAt
	}
	return t.CreatedAt
}

// List is the ordered collection of tasks in the blob.
type List []Task

// Add appends a new task and returns it.
func (l *List) Add(text string, now time.Time) (Task, error) {
	t, err := New(text, now)
	if err != nil {
		return Task{}, err
	}
	*l = append(*l, t)
	return t, nil
}

// Find returns a pointer into the list for the task with the given ID.
func (l List) Find(id string) (*Task, error) {
	for i := range l {
		if l[i].ID == id {
			return &l[i], nil
		}
	}
	return nil, ErrNotFound
}

// Remove deletes the task with the given ID, preserving order.
func (l *List) Remove(id string) error {
	for i := range *l {
		if (*l)[i].ID == id {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Filter returns the tasks whose anchor date falls inside the window.
// Done tasks are anchored to their completion date, open tasks to their
// creation date, so a task created last week and finished today shows up
// in today's view once it is done.
func (l List) Filter(w dates.Window) List {
	var out List
	for _, t := range l {
		if w.Contains(t.AnchorDate()) {
			out = append(out, t)
		}
	}
	return out
}

// Open returns the tasks not yet done, in list order.
func (l List) Open() List {
	var out List
	for _, t := range l {
		if !t.Done {
			out = append(out, t)
		}
	}
	return out
}

// CompletionLog renders completed tasks grouped by completion date, newest
// date first, one line per date. Used as summarizer input alongside journal
// entries.
func (l List) CompletionLog() string {
	byDate := make(map[string][]string)
	for _, t := range l {
		if !t.Done || t.CompletedAt == nil {
			continue
		}
		key := dates.Key(*t.CompletedAt)
		byDate[key] = append(byDate[key], t.Text)
	}
	if len(byDate) == 0 {
		return ""
	}
	keys := make([]string, 0, len(byDate))
	for k := range byDate {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "Tasks completed on %s: %s", k, strings.Join(byDate[k], ", "))
	}
	return b.String()
}
