package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/MehdiShad/CardexPro/internal/domain"
	"github.com/MehdiShad/CardexPro/internal/observability"
	"github.com/MehdiShad/CardexPro/internal/service"
)

// NewRouter builds the full route tree with middleware. The rate
// limiter guards only the unauthenticated auth endpoints.
func NewRouter(
	auth *service.AuthService,
	activities *service.ActivityService,
	users domain.UserRepository,
	limiter *service.RateLimiter,
	allowedOrigins []string,
) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(SecurityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", HandleHealthz)
	r.Method(http.MethodGet, "/metrics", observability.MetricsHandler())

	authHandler := NewAuthHandler(auth)
	userHandler := NewUserHandler(auth, users)
	activityHandler := NewActivityHandler(activities)

	throttled := func(h http.HandlerFunc) http.Handler {
		return RateLimit(limiter, h)
	}
	authenticated := func(next http.Handler) http.Handler {
		return RequireAuth(auth, next)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Method(http.MethodPost, "/token/", throttled(authHandler.HandleObtainToken))
			r.Method(http.MethodPost, "/token/refresh/", throttled(authHandler.HandleRefreshToken))
		})

		r.Route("/users", func(r chi.Router) {
			r.Method(http.MethodPost, "/register/", throttled(userHandler.HandleRegister))

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Get("/me/", userHandler.HandleMe)
				r.Patch("/me/", userHandler.HandleUpdateMe)
				r.Post("/activities/", activityHandler.HandleCreate)
				r.Get("/activities/", activityHandler.HandleList)
			})
		})
	})

	return r
}
