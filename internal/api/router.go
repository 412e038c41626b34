package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/shopsmart-be/internal/api/handlers"
	"github.com/isdelr/shopsmart-be/internal/auth"
	"github.com/isdelr/shopsmart-be/internal/metrics"
	"github.com/isdelr/shopsmart-be/internal/services"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

// Options configures NewRouter.
type Options struct {
	AuthService    services.AuthServiceProvider
	Tokens         *auth.TokenIssuer
	Metrics        *metrics.Metrics
	AllowedOrigins []string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(opts Options) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", middleware.GetReqID(r.Context())).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("Request handled")
	}))
	r.Use(middleware.Recoverer)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	authHandler := handlers.NewAuthHandler(opts.AuthService, opts.Metrics)

	r.Get("/", handlers.Root)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.With(opts.Tokens.Middleware()).Get("/me", authHandler.Me)
		})
	})

	return r
}
