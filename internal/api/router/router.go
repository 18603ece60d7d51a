package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sextosistema/agency-platform/internal/contact"
	httpmiddleware "github.com/sextosistema/agency-platform/internal/http/middleware"
	"github.com/sextosistema/agency-platform/internal/leads"
	"github.com/sextosistema/agency-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	LeadsHandler   *leads.Handler
	ContactHandler *contact.Handler

	// AdminJWTSecret guards GET/PATCH/DELETE /api/leads when set. When
	// empty the admin routes stay open, which is only acceptable in dev.
	AdminJWTSecret     string
	CORSAllowedOrigins []string
	MetricsHandler     http.Handler

	// FormRateLimit wraps the public form endpoints. Optional.
	FormRateLimit func(http.Handler) http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	formLimit := cfg.FormRateLimit
	if formLimit == nil {
		formLimit = func(next http.Handler) http.Handler { return next }
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.ContactHandler != nil {
			api.With(formLimit).Post("/contact", cfg.ContactHandler.Submit)
		}

		api.Route("/leads", func(l chi.Router) {
			l.With(formLimit).Post("/", cfg.LeadsHandler.Create)

			l.Group(func(admin chi.Router) {
				if cfg.AdminJWTSecret != "" {
					admin.Use(httpmiddleware.AdminJWT(cfg.AdminJWTSecret))
				}
				admin.Get("/", cfg.LeadsHandler.List)
				admin.Patch("/", cfg.LeadsHandler.Update)
				admin.Delete("/", cfg.LeadsHandler.Delete)
			})
		})
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
