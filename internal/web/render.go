package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/pulsehq/pulse/internal/dates"
	"github.com/pulsehq/pulse/internal/habit"
	"github.com/pulsehq/pulse/internal/journal"
	"github.com/pulsehq/pulse/internal/progress"
	"github.com/pulsehq/pulse/internal/tasks"
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title    string
	Version  string
	Nav      string // active nav item: "tracker", "stats", "journal", "todo"
	Username string
	Flash    string
}

// AuthPageData is the template data for the login and register pages.
type AuthPageData struct {
	PageData
	Error string
}

// TrackerRow is one habit's week in the tracker grid.
type TrackerRow struct {
	Habit    string
	Color    string
	Goal     int
	Streak   habit.StreakRecord
	Outcomes []string // one per day: "succeeded", "failed", or ""
}

// TrackerPageData is the template data for the weekly tracker page.
type TrackerPageData struct {
	PageData
	Days      []time.Time
	Today     time.Time
	Offset    int
	WeekLabel string
	Rows      []TrackerRow
}

// StatsPageData is the template data for the analytics page.
type StatsPageData struct {
	PageData
	View        string
	Offset      int
	PeriodLabel string
	Rows        []progress.Row
	Deltas      []string
	DayMatrix   *progress.DayMatrix
	MonthMatrix *progress.MonthMatrix
}

// JournalPageData is the template data for the journal page.
type JournalPageData struct {
	PageData
	Today   time.Time
	Current *journal.Entry
	History []journal.Keyed
	Summary string
	Period  string
}

// TodoPageData is the template data for the to-do page.
type TodoPageData struct {
	PageData
	Tasks  tasks.List
	Period string
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates map[string]*template.Template
	version   string
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version string) *Renderer {
	funcMap := template.FuncMap{
		"add":      func(a, b int) int { return a + b },
		"sub":      func(a, b int) int { return a - b },
		"dateKey":  func(t time.Time) string { return t.Format(dates.ISO) },
		"dayLabel": func(t time.Time) string { return t.Format("Mon 2") },
		"monthAbbr": func(i int) string {
			return time.Month(i + 1).String()[:3]
		},
		"sameDay": func(a, b time.Time) bool {
			return a.Format(dates.ISO) == b.Format(dates.ISO)
		},
	}

	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	pages := map[string]string{
		"login":    "login.html",
		"register": "register.html",
		"tracker":  "tracker.html",
		"stats":    "stats.html",
		"journal":  "journal.html",
		"todo":     "todo.html",
		"error":    "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		version:   version,
	}
}

// renderPage renders a named page template with HTTP 200.
func (r *Renderer) renderPage(w http.ResponseWriter, name string, data any) {
	r.renderPageStatus(w, http.StatusOK, name, data)
}

func (r *Renderer) renderPageStatus(w http.ResponseWriter, status int, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		log.Printf("template %q not found", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("template execution error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders the full error page.
func (r *Renderer) renderError(w http.ResponseWriter, status int, message string) {
	r.renderPageStatus(w, status, "error", ErrorPageData{
		PageData: PageData{
			Title:   fmt.Sprintf("Error %d", status),
			Version: r.version,
		},
		StatusCode: status,
		Message:    message,
	})
}
