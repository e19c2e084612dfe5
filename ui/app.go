package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fakexlsx/internal"
)

//go:embed templates/*.html
var embeddedFiles embed.FS

// App serves the generator form over HTTP
type App struct {
	router    *chi.Mux
	templates *template.Template
	config    Config
	logger    *internal.Logger
}

// Config holds UI application configuration
type Config struct {
	Port  string
	Sheet string
	// Seed fixes every request's random source; zero seeds each request from the clock.
	Seed int64
	// Now overrides time.Now, for tests.
	Now func() time.Time
}

// NewApp creates a new UI application
func NewApp(config Config, logger *internal.Logger) (*App, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	funcMap := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		templates: templates,
		config:    config,
		logger:    logger,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/healthz", a.handleHealth)

	a.router.Post("/generate", a.handleGenerateForm)
	a.router.Post("/api/series", a.handleGenerateJSON)
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.config.Port
	a.logger.Info("Starting fakexlsx form server on %s", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		a.logger.Error("template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
