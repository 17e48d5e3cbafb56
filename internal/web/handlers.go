package web

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pulsehq/pulse/internal/ai"
	"github.com/pulsehq/pulse/internal/auth"
	"github.com/pulsehq/pulse/internal/dates"
	"github.com/pulsehq/pulse/internal/habit"
	"github.com/pulsehq/pulse/internal/journal"
	"github.com/pulsehq/pulse/internal/progress"
	"github.com/pulsehq/pulse/internal/store"
	"github.com/pulsehq/pulse/internal/streak"
)

const sessionCookie = "pulse_session"

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	db        *store.DB
	auth      *auth.Service
	summarize Summarize
	renderer  *Renderer
	now       func() time.Time
}

// withUser resolves the session cookie and passes the username through.
// Requests without a valid session are sent to the login page.
func (h *Handlers) withUser(next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		username, err := h.auth.ValidateSession(cookie.Value)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next(w, r, username)
	}
}

func (h *Handlers) page(title, nav, username string) PageData {
	return PageData{
		Title:    title,
		Version:  h.renderer.version,
		Nav:      nav,
		Username: username,
	}
}

// --- auth pages ---

func (h *Handlers) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, "login", AuthPageData{PageData: h.page("Log in", "", "")})
}

func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if _, err := h.auth.Login(username, password); err != nil {
		h.renderer.renderPageStatus(w, http.StatusUnauthorized, "login", AuthPageData{
			PageData: h.page("Log in", "", ""),
			Error:    "Invalid username or password.",
		})
		return
	}

	token, err := h.auth.NewSession(username)
	if err != nil {
		log.Printf("creating session: %v", err)
		h.renderer.renderError(w, http.StatusInternalServerError, "Could not start a session.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(auth.SessionTTL.Seconds()),
	})
	http.Redirect(w, r, "/tracker", http.StatusFound)
}

func (h *Handlers) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, "register", AuthPageData{PageData: h.page("Register", "", "")})
}

func (h *Handlers) HandleRegister(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	name := strings.TrimSpace(r.FormValue("name"))
	password := r.FormValue("password")

	if err := h.auth.Register(username, name, password); err != nil {
		h.renderer.renderPageStatus(w, http.StatusBadRequest, "register", AuthPageData{
			PageData: h.page("Register", "", ""),
			Error:    err.Error(),
		})
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *Handlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if err := h.auth.DeleteSession(cookie.Value); err != nil {
			log.Printf("deleting session: %v", err)
		}
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/login", http.StatusFound)
}

// --- tracker ---

func (h *Handlers) HandleTracker(w http.ResponseWriter, r *http.Request, username string) {
	offset := intParam(r, "offset", 0)
	today := dates.Day(h.now())
	ref := dates.Shift(dates.Weekly, today, offset)
	monday, sunday := dates.WeekBounds(ref)

	data, err := h.db.Load(username)
	if err != nil {
		log.Printf("loading data for %s: %v", username, err)
		h.renderer.renderError(w, http.StatusInternalServerError, "Could not load your data.")
		return
	}
	// Cached records go stale overnight; recompute against today before
	// showing them.
	streak.RefreshAll(data, h.now())

	var days []time.Time
	for d := monday; !d.After(sunday); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	var rows []TrackerRow
	for _, name := range data.Names() {
		outcomes := make([]string, len(days))
		for i, d := range days {
			if o, ok := data.Outcome(name, d); ok {
				outcomes[i] = string(o)
			}
		}
		rows = append(rows, TrackerRow{
			Habit:    name,
			Color:    habit.Color(name),
			Goal:     data.Goal(name),
			Streak:   data.Streaks[name],
			Outcomes: outcomes,
		})
	}

	h.renderer.renderPage(w, "tracker", TrackerPageData{
		PageData:  h.page("Tracker", "tracker", username),
		Days:      days,
		Today:     today,
		Offset:    offset,
		WeekLabel: fmt.Sprintf("%s – %s", monday.Format("Jan 2"), sunday.Format("Jan 2, 2006")),
		Rows:      rows,
	})
}

func (h *Handlers) HandleToggle(w http.ResponseWriter, r *http.Request, username string) {
	name := r.FormValue("habit")
	date, err := dates.ParseKey(r.FormValue("date"))
	if err != nil {
		h.renderer.renderError(w, http.StatusBadRequest, "Invalid date.")
		return
	}

	data, err := h.db.Load(username)
	if err != nil {
		h.renderer.renderError(w, http.StatusInternalServerError, "Could not load your data.")
		return
	}
	if _, _, err := data.Toggle(name, date); err != nil {
		h.renderer.renderError(w, http.StatusBadRequest, err.Error())
		return
	}
	streak.Refresh(data, name, h.now())
	if err := h.db.Save(username, data); err != nil {
		h.renderer.renderError(w, http.StatusInternalServerError, "Could not save your data.")
		return
	}
	http.Redirect(w, r, "/tracker?offset="+r.FormValue("offset"), http.StatusFound)
}

func (h *Handlers) HandleHabitAdd(w http.ResponseWriter, r *http.Request, username string) {
	name := r.FormValue("name")
	goal, err := strconv.Atoi(r.FormValue("goal"))
	if err != nil {
		h.renderer.renderError(w, http.StatusBadRequest, "Goal must be a number.")
		return
	}

	data, err := h.db.Load(username)
	if err != nil {
		h.renderer.renderError(w, http.StatusInternalServerError, "Could not load your data.")
		return
	}
	if err := data.AddHabit(name, goal); err != nil {
		h.renderer.renderError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.db.Save(username, data); err != nil {
		h.renderer.renderError(w, http.StatusInternalServerError, "Could not save your data.")
		return
	}
	http.Redirect(w, r, "/tracker", http.StatusFound)
}

func (h *Handlers) HandleHabitDelete(w http.ResponseWriter, r *http.Request, username string) {
	data, err := h.db.Load(username)
	if err != nil {
		h.renderer.renderError(w, http.StatusInternalServerError, "Could not load your data.")
		return
	}
	if err := data.RemoveHabit(r.FormValue("name")); err != nil {
		h.renderer.renderError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.db.Save(username, data); err != nil {
		h.renderer.renderError(w, http.StatusInternalServerError, "Could not save your data.")
		return
	}
	http.Redirect(w, r, "/tracker", http.StatusFound)
}

// --- stats ---

func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request, username string) {
	view := r.URL.Query().Get("view")
	if view == "" {
		view = "weekly"
	}
	period, err := dates.ParsePeriod(view)
	if err != nil || period == dates.Daily {
		h.renderer.renderError(w, http.StatusBadRequest, "View must be weekly, monthly, or yearly.")
		return
	}
	offset := intParam(r, "offset", 0)
	ref := dates.Shift(period, dates.Day(h.now()), offset)

	data, err := h.db.Load(username)
	if err != nil {
		h.renderer.renderError(w, http.StatusInternalServerError, "Could not load your data.")
		return
	}

	report := progress.Build(data, period, ref)
	deltas := make([]string, len(report.Rows))
	for i, row := range report.Rows {
		deltas[i] = row.FormatDelta()
	}

	page := StatsPageData{
		PageData:    h.page("Analytics", "stats", username),
		View:        period.String(),
		Offset:      offset,
		PeriodLabel: periodLabel(period, report.Window),
		Rows:        report.Rows,
		Deltas:      deltas,
	}
	if period == dates.Yearly {
		m := progress.BuildMonthMatrix(data, ref.Year())
		page.MonthMatrix = &m
	} else {
		m := progress.BuildDayMatrix(data, report.Window)
		page.DayMatrix = &m
	}

	h.renderer.renderPage(w, "stats", page)
}

func periodLabel(p dates.Period, w dates.Window) string {
	switch p {
	case dates.Weekly:
		return fmt.Sprintf("%s – %s", w.Start.Format("Jan 2"), w.End.Format("Jan 2, 2006"))
	case dates.Monthly:
		return w.Start.Format("January 2006")
	default:
		return w.Start.Format("2006")
	}
}

// --- journal ---

func (h *Handlers) HandleJournal(w http.ResponseWriter, r *http.Request, username string) {
	h.renderJournal(w, username, "", "daily")
}

func (h *Handlers) renderJournal(w http.ResponseWriter, username, summary, period string) {
	data, err := h.db.Load(username)
	if err != nil {
		h.renderer.renderError(w, http.StatusInternalServerError, "Could not load your data.")
		return
	}

	today := dates.Day(h.now())
	page := JournalPageData{
		PageData: h.page("Journal", "journal", username),
		Today:    today,
		History:  data.Journal.All(),
		Summary:  summary,
		Period:   period,
	}
	if entry, ok := data.Journal.Get(today); ok {
		page.Current = &entry
	}
	h.renderer.renderPage(w, "journal", page)
}

func (h *Handlers) HandleJournalWrite(w http.ResponseWriter, r *http.Request, username string) {
	feeling := strings.TrimSpace(r.FormValue("feeling"))
	cause := strings.TrimSpace(r.FormValue("cause"))
	if feeling == "" {
		h.renderer.renderError(w, http.StatusBadRequest, "Feeling cannot be empty.")
		return
	}

	data, err := h.db.Load(username)
	if err != nil {
		h.renderer.renderError(w, http.StatusInternalServerError, "Could not load your data.")
		return
	}
	now := h.now()
	data.Journal.Write(dates.Day(now), feeling, cause, now)
	if err := h.db.Save(username, data); err != nil {
		h.renderer.renderError(w, http.StatusInternalServerError, "Could not save your data.")
		return
	}
	http.Redirect(w, r, "/journal", http.StatusFound)
}

func (h *Handlers) HandleJournalSummary(w http.ResponseWriter, r *http.Request, username string) {
	period := r.FormValue("period")
	p, err := dates.ParsePeriod(period)
	if err != nil || p == dates.Yearly {
		h.renderer.renderError(w, http.StatusBadRequest, "Period must be daily, weekly, or monthly.")
		return
	}

	data, err := h.db.Load(username)
	if err != nil {
		h.renderer.renderError(w, http.StatusInternalServerError, "Could not load your data.")
		return
	}

	today := dates.Day(h.now())
	window := dates.PeriodWindow(p, today)
	entries := data.Journal.Filter(window)

	text := journal.EntriesText(entries)
	if completed := data.Todo.Filter(window).CompletionLog(); completed != "" {
		text = strings.TrimRight(text, "\n") + "\n\n" + completed
	}

	summary := h.summarize(r.Context(), text, p.String())

	// Daily summaries stick to the day's entry so they survive reloads.
	// Error placeholders are shown but never saved.
	if p == dates.Daily && summary != "" && !ai.Failed(summary) {
		if data.Journal.SetSummary(today, summary) {
			if err := h.db.Save(username, data); err != nil {
				log.Printf("saving summary for %s: %v", username, err)
			}
		}
	}

	h.renderJournal(w, username, summary, p.String())
}

// --- todo ---

func (h *Handlers) HandleTodo(w http.ResponseWriter, r *http.Request, username string) {
	period := r.URL.Query().Get("period")

	data, err := h.db.Load(username)
	if err != nil {
		h.renderer.renderError(w, http.StatusInternalServerError, "Could not load your data.")
		return
	}

	list := data.Todo
	if period != "" && period != "all" {
		p, err := dates.ParsePeriod(period)
		if err != nil {
			h.renderer.renderError(w, http.StatusBadRequest, err.Error())
			return
		}
		list = list.Filter(dates.PeriodWindow(p, h.now()))
	} else {
		period = "all"
	}

	h.renderer.renderPage(w, "todo", TodoPageData{
		PageData: h.page("To-do", "todo", username),
		Tasks:    list,
		Period:   period,
	})
}

func (h *Handlers) HandleTodoAdd(w http.ResponseWriter, r *http.Request, username string) {
	data, err := h.db.Load(username)
	if err != nil {
		h.renderer.renderError(w, http.StatusInternalServerError, "Could not load your data.")
		return
	}
	if _, err := data.Todo.Add(r.FormValue("text"), h.now()); err != nil {
		h.renderer.renderError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.db.Save(username, data); err != nil {
		h.renderer.renderError(w, http.StatusInternalServerError, "Could not save your data.")
		return
	}
	http.Redirect(w, r, "/todo", http.StatusFound)
}

func (h *Handlers) HandleTodoToggle(w http.ResponseWriter, r *http.Request, username string) {
	data, err := h.db.Load(username)
	if err != nil {
		h.renderer.renderError(w, http.StatusInternalServerError, "Could not load your data.")
		return
	}
	task, err := data.Todo.Find(r.FormValue("id"))
	if err != nil {
		h.renderer.renderError(w, http.StatusBadRequest, "Task not found.")
		return
	}
	if task.Done {
		task.Uncomplete()
	} else {
		task.Complete(h.now())
	}
	if err := h.db.Save(username, data); err != nil {
		h.renderer.renderError(w, http.StatusInternalServerError, "Could not save your data.")
		return
	}
	http.Redirect(w, r, "/todo", http.StatusFound)
}

func (h *Handlers) HandleTodoDelete(w http.ResponseWriter, r *http.Request, username string) {
	data, err := h.db.Load(username)
	if err != nil {
		h.renderer.renderError(w, http.StatusInternalServerError, "Could not load your data.")
		return
	}
	if err := data.Todo.Remove(r.FormValue("id")); err != nil {
		h.renderer.renderError(w, http.StatusBadRequest, "Task not found.")
		return
	}
	if err := h.db.Save(username, data); err != nil {
		h.renderer.renderError(w, http.StatusInternalServerError, "Could not save your data.")
		return
	}
	http.Redirect(w, r, "/todo", http.StatusFound)
}

func intParam(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		v = r.FormValue(name)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
