// Package journal holds daily journal entries: one entry per calendar date,
// with an optional AI-generated summary attached after the fact.
package journal

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pulsehq/pulse/internal/dates"
)

// Entry is one day's journal record.
type Entry struct {
	Feeling   string    `json:"feeling"`
	Cause     string    `json:"cause"`
	Timestamp time.Time `json:"timestamp"`
	Summary   string    `json:"summary,omitempty"`
}

// Book maps ISO date keys to entries.
type Book map[string]Entry

// Write records an entry for the given date, replacing any existing entry
// for that day. A summary already attached to the day survives the rewrite;
// summaries are generated from entries, not the other way around.
func (b Book) Write(date time.Time, feeling, cause string, now time.Time) {
	key := dates.Key(date)
	entry := Entry{
		Feeling:   strings.TrimSpace(feeling),
		Cause:     strings.TrimSpace(cause),
		Timestamp: now,
	}
	if prev, ok := b[key]; ok {
		entry.Summary = prev.Summary
	}
	b[key] = entry
}

// SetSummary attaches a summary to the entry for the given date, if one
// exists.
func (b Book) SetSummary(date time.Time, summary string) bool {
	key := dates.Key(date)
	entry, ok := b[key]
	if !ok {
		return false
	}
	entry.Summary = summary
	b[key] = entry
	return true
}

// Get returns the entry for a date, if present.
func (b Book) Get(date time.Time) (Entry, bool) {
	e, ok := b[dates.Key(date)]
	return e, ok
}

// Keyed pairs a date key with its entry for ordered iteration.
type Keyed struct {
	Date  string
	Entry Entry
}

// Filter returns the entries whose date key falls inside the window, in
// ascending date order. Keys that do not parse as dates are skipped.
func (b Book) Filter(w dates.Window) []Keyed {
	var out []Keyed
	for key, entry := range b {
		d, err := dates.ParseKey(key)
		if err != nil {
			continue
		}
		if w.Contains(d) {
			out = append(out, Keyed{Date: key, Entry: entry})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// All returns every entry with a parseable date key, ascending.
func (b Book) All() []Keyed {
	var out []Keyed
	for key, entry := range b {
		if _, err := dates.ParseKey(key); err != nil {
			continue
		}
		out = append(out, Keyed{Date: key, Entry: entry})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// EntriesText renders entries as summarizer input, one block per day in
// date order.
func EntriesText(entries []Keyed) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "On %s:\n- Feeling: %s\n- Possible Cause: %s\n", e.Date, e.Entry.Feeling, e.Entry.Cause)
	}
	return b.String()
}
