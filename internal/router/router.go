package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/FACorreiaa/usa-attractions/internal/api/attraction"
	"github.com/FACorreiaa/usa-attractions/internal/api/auth"
)

// Config contains dependencies needed for the router setup
type Config struct {
	AuthHandler            *auth.AuthHandler
	AttractionHandler      attraction.Handler
	AuthenticateMiddleware func(http.Handler) http.Handler
	// SignInLimit caps sign-in and sign-up requests per client IP per minute.
	SignInLimit int
}

// SetupRouter initializes the API routes. Server-wide middleware (logger,
// request id, recoverer) is applied in main.go before mounting.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	limit := cfg.SignInLimit
	if limit <= 0 {
		limit = 10
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Public
		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(limit, time.Minute))
			r.Post("/auth/signup", cfg.AuthHandler.SignUp)
			r.Post("/auth/signin", cfg.AuthHandler.SignIn)
		})

		// Protected
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)

			r.Post("/auth/signout", cfg.AuthHandler.SignOut)
			r.Get("/auth/session", cfg.AuthHandler.GetSession)

			r.Route("/attractions", func(r chi.Router) {
				r.Get("/", cfg.AttractionHandler.ListAttractions)
				r.Post("/", cfg.AttractionHandler.CreateAttraction)
				r.Route("/{attractionID}", func(r chi.Router) {
					r.Get("/", cfg.AttractionHandler.GetAttraction)
					r.Patch("/", cfg.AttractionHandler.UpdateAttraction)
					r.Delete("/", cfg.AttractionHandler.DeleteAttraction)
					r.Post("/reviews", cfg.AttractionHandler.AddReview)
				})
			})
			r.Put("/reviews/{reviewID}", cfg.AttractionHandler.UpdateReview)
			r.Delete("/reviews/{reviewID}", cfg.AttractionHandler.DeleteReview)
		})
	})

	return r
}
