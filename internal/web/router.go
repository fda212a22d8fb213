package web

import (
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/justinas/nosurf"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/acgh213/peoplefinder/internal/config"
	"github.com/acgh213/peoplefinder/internal/metrics"
	appmw "github.com/acgh213/peoplefinder/internal/middleware"
	"github.com/acgh213/peoplefinder/internal/ratelimit"
	"github.com/acgh213/peoplefinder/internal/session"
)

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

type Server struct {
	cfg       *config.Config
	logger    *slog.Logger
	templates *template.Template
	sessions  *session.Store
	limiter   *ratelimit.Limiter
}

// NewRouter builds the web front end. Each browser gets a view session from
// sessions holding its search controller.
func NewRouter(cfg *config.Config, sessions *session.Store, logger *slog.Logger) http.Handler {
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		sessions: sessions,
		limiter:  ratelimit.New(cfg.SearchRateLimit, time.Minute),
	}

	if err := s.loadTemplates(); err != nil {
		logger.Error("failed to load templates", "error", err)
		panic(err)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appmw.NewSlogLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.Compress(5))

	staticContent, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))

	r.Get("/health", s.handleHealth)
	r.With(appmw.NewMetricsAuth(cfg.MetricsUser, cfg.MetricsPassword).Handler).
		Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(csrfProtect(cfg.IsDevelopment(), logger))
		r.Use(session.NewMiddleware(sessions, !cfg.IsDevelopment()).Handler)

		r.Get("/", s.handleIndex)
		r.Post("/search", s.handleSearch)
		r.Get("/people/{username}", s.handleSelectUser)
		r.Post("/back", s.handleBack)
		r.Post("/clear", s.handleClear)
	})

	return r
}

func (s *Server) loadTemplates() error {
	funcMap := template.FuncMap{
		"pathEscape": url.PathEscape,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS,
		"templates/layout/*.html",
		"templates/search/*.html",
	)
	if err != nil {
		return err
	}
	s.templates = tmpl
	return nil
}

// csrfProtect wraps nosurf for CSRF protection of the form posts.
func csrfProtect(isDev bool, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		csrf := nosurf.New(next)
		csrf.SetBaseCookie(http.Cookie{
			Name:     "csrf_token",
			Path:     "/",
			HttpOnly: true,
			Secure:   !isDev,
			SameSite: http.SameSiteLaxMode,
		})
		// Detect TLS from the actual request (X-Forwarded-Proto or r.TLS)
		csrf.SetIsTLSFunc(func(r *http.Request) bool {
			if r.TLS != nil {
				return true
			}
			return r.Header.Get("X-Forwarded-Proto") == "https"
		})
		csrf.SetFailureHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("CSRF validation failed",
				"method", r.Method,
				"path", r.URL.Path,
				"reason", nosurf.Reason(r),
				"ip", r.RemoteAddr,
			)
			http.Error(w, "Forbidden - invalid CSRF token", http.StatusForbidden)
		}))
		return csrf
	}
}
