package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"lastmile/internal"
	"lastmile/internal/config"
	"lastmile/internal/profiling"
	"lastmile/internal/session"
)

//go:embed templates/*.html
var embeddedFiles embed.FS

// App is the presentation layer: a chi router serving the dashboard page and
// the JSON API. It holds no analytics state of its own; every response is
// computed by calling into the session's pipeline operations.
type App struct {
	router    *chi.Mux
	sessions  *session.Manager
	profiler  *profiling.Profiler
	cfg       *config.Config
	templates *template.Template
	log       *internal.Logger

	// Shared read-only session backing the dashboard page, created lazily.
	dashMu      sync.Mutex
	dashboardID string
}

// NewApp creates the UI application.
func NewApp(cfg *config.Config, sessions *session.Manager) (*App, error) {
	funcMap := template.FuncMap{
		// Missing numerics render as zero; templates guard display themselves.
		"deref": func(v *float64) float64 {
			if v == nil {
				return 0
			}
			return *v
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		sessions:  sessions,
		profiler:  profiling.NewProfiler(),
		cfg:       cfg,
		templates: templates,
		log:       internal.DefaultLogger.WithComponent("UI"),
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Dashboard page
	a.router.Get("/", a.handleDashboard)

	// Session lifecycle
	a.router.Post("/api/sessions", a.handleCreateSession)
	a.router.Get("/api/sessions/{id}", a.handleGetSession)
	a.router.Delete("/api/sessions/{id}", a.handleDeleteSession)

	// Filter controls
	a.router.Get("/api/sessions/{id}/values", a.handleValues)
	a.router.Put("/api/sessions/{id}/filters", a.handleSetFilters)
	a.router.Post("/api/sessions/{id}/filters/reset", a.handleResetFilters)

	// Aggregates over the current view
	a.router.Get("/api/sessions/{id}/kpis", a.handleKPIs)
	a.router.Get("/api/sessions/{id}/summary", a.handleSummary)
	a.router.Get("/api/sessions/{id}/profile", a.handleProfile)

	// Reporting
	a.router.Get("/api/sessions/{id}/report", a.handleReport)
	a.router.Get("/api/sessions/{id}/export", a.handleExport)
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.router
}

// renderTemplate executes an HTML template
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		a.log.Error("template %s failed: %v", templateName, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
