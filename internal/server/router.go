package server

import (
	"net/http"

	"github.com/Stewz00/rpmwiki-auth/internal/handler"
	"github.com/Stewz00/rpmwiki-auth/internal/middleware"
	"github.com/Stewz00/rpmwiki-auth/internal/ratelimit"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	AuthHandler    *handler.AuthHandler
	Limiter        *ratelimit.Limiter
	Log            logrus.FieldLogger
	AllowedOrigins []string
	// TrustProxy keys clients on X-Forwarded-For / X-Real-IP. Only enable
	// it behind a proxy that overwrites those headers.
	TrustProxy bool
}

// NewRouter builds the HTTP surface. Every request, preflights included,
// passes the admission gate once, before routing.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	if d.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.Recoverer(d.Log))
	r.Use(middleware.Admission(d.Limiter, d.Log))

	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:         300,
	}))

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.NotFound)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Post("/auth/register", d.AuthHandler.Register)

	return r
}
