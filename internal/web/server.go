// Package web serves the tracker form as a local web page.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/taxtracker/taxtracker/internal/form"
)

//go:embed templates/*.html
var templatesFS embed.FS

const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	RateLimit float64 // POST requests per second; <= 0 disables limiting
	Burst     int
	Logger    *slog.Logger
}

// Server is the HTTP front end of a form.Form. Handlers take mu for the
// whole of their work on the form, so the form sees one action at a time.
type Server struct {
	http.Server
	templates *template.Template
	limiter   *rate.Limiter
	log       *slog.Logger

	mu   sync.Mutex
	form *form.Form
}

// NewServer configures routes and templates, returning a ready-to-run Server.
func NewServer(addr string, f *form.Form, opts Options) (*Server, error) {
	t, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	limit := rate.Limit(opts.RateLimit)
	if opts.RateLimit <= 0 {
		limit = rate.Inf
	}

	s := &Server{
		templates: t,
		limiter:   rate.NewLimiter(limit, opts.Burst),
		log:       log,
		form:      f,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /transactions", s.handleAddTransaction)
	mux.HandleFunc("POST /totals", s.handleCalculateTotals)
	mux.HandleFunc("GET /healthz", handleHealth)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.withRequestLogging(s.withRateLimit(withSecurityHeaders(mux))),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}
	return s, nil
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("Starting server", "addr", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving on %s: %w", s.Addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		s.log.Info("Server stopped")
		return nil
	})

	return g.Wait()
}

type pageData struct {
	Description string
	Amount      string
	Log         []string
	Notice      *form.Notice
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	data := pageData{Log: s.form.Log()}
	s.mu.Unlock()

	s.render(w, r, http.StatusOK, data)
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.log.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in := form.Input{
		Description: sanitizeInput(r.PostForm.Get("description")),
		Amount:      sanitizeInput(r.PostForm.Get("amount")),
	}

	s.mu.Lock()
	rec, err := s.form.AddTransaction(in)
	log := s.form.Log()
	s.mu.Unlock()

	if err != nil {
		s.log.InfoContext(r.Context(), "Transaction rejected", "error", err)
		notice := form.NoticeFor(err)
		s.render(w, r, http.StatusUnprocessableEntity, pageData{
			Description: in.Description,
			Amount:      in.Amount,
			Log:         log,
			Notice:      &notice,
		})
		return
	}

	s.log.InfoContext(r.Context(), "Transaction added",
		"description", rec.Description,
		"amount", rec.Amount.String(),
		"kind", rec.Kind())

	// Redirecting clears the input fields.
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleCalculateTotals(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	t := s.form.CalculateTotals()
	log := s.form.Log()
	s.mu.Unlock()

	s.log.InfoContext(r.Context(), "Totals calculated",
		"income", t.Income.String(),
		"expenses", t.Expenses.String(),
		"net", t.Net.String())

	notice := form.TotalsNotice(t)
	s.render(w, r, http.StatusOK, pageData{Log: log, Notice: &notice})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.log.ErrorContext(r.Context(), "Template execution failed", "error", err, "template", "index.html")
	}
}

// sanitizeInput drops control characters other than tab.
func sanitizeInput(v string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' {
			return -1
		}
		return r
	}, v)
}
