// Package web serves the browser UI: tracker, analytics, journal, and
// to-do pages rendered from embedded templates, with cookie sessions
// backed by the auth store.
package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pulsehq/pulse/internal/auth"
	"github.com/pulsehq/pulse/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Summarize generates a journal summary for the given entries text and
// period label. Wired to the AI layer in production, stubbed in tests.
type Summarize func(ctx context.Context, entriesText, period string) string

// NewServer creates and configures the HTTP server for the pulse web UI.
func NewServer(db *store.DB, authSvc *auth.Service, summarize Summarize, version, bind string, port int) *http.Server {
	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		log.Fatalf("failed to create template sub-FS: %v", err)
	}
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatalf("failed to create static sub-FS: %v", err)
	}

	h := &Handlers{
		db:        db,
		auth:      authSvc,
		summarize: summarize,
		renderer:  NewRenderer(templateSub, version),
		now:       time.Now,
	}

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", bind, port),
		Handler: securityHeaders(h.routes(staticSub)),
	}
}

// routes wires the mux using Go 1.22+ pattern syntax.
func (h *Handlers) routes(staticSub fs.FS) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/tracker", http.StatusFound)
	})

	mux.HandleFunc("GET /login", h.HandleLoginPage)
	mux.HandleFunc("POST /login", h.HandleLogin)
	mux.HandleFunc("GET /register", h.HandleRegisterPage)
	mux.HandleFunc("POST /register", h.HandleRegister)
	mux.HandleFunc("POST /logout", h.HandleLogout)

	mux.HandleFunc("GET /tracker", h.withUser(h.HandleTracker))
	mux.HandleFunc("POST /tracker/toggle", h.withUser(h.HandleToggle))
	mux.HandleFunc("POST /habits", h.withUser(h.HandleHabitAdd))
	mux.HandleFunc("POST /habits/delete", h.withUser(h.HandleHabitDelete))

	mux.HandleFunc("GET /stats", h.withUser(h.HandleStats))

	mux.HandleFunc("GET /journal", h.withUser(h.HandleJournal))
	mux.HandleFunc("POST /journal", h.withUser(h.HandleJournalWrite))
	mux.HandleFunc("POST /journal/summary", h.withUser(h.HandleJournalSummary))

	mux.HandleFunc("GET /todo", h.withUser(h.HandleTodo))
	mux.HandleFunc("POST /todo", h.withUser(h.HandleTodoAdd))
	mux.HandleFunc("POST /todo/toggle", h.withUser(h.HandleTodoToggle))
	mux.HandleFunc("POST /todo/delete", h.withUser(h.HandleTodoDelete))

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticSub)))

	return mux
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Printf("pulse UI running at http://%s", srv.Addr)

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Printf("WARNING: Server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
