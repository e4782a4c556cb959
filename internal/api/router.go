package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/alumninet/alumninet-be/internal/api/handlers"
	"github.com/alumninet/alumninet-be/internal/auth"
	"github.com/alumninet/alumninet-be/internal/monitoring"
	"github.com/alumninet/alumninet-be/internal/services"
	"github.com/alumninet/alumninet-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router. Every route except the
// login endpoint sits behind the token gate, so new resources mounted in the
// gated group are protected by construction.
func NewRouter(
	tokenSvc *auth.Service,
	userSvc services.UserServiceProvider,
	profileSvc services.ProfileServiceProvider,
	jobSvc services.JobServiceProvider,
	eventSvc services.EventServiceProvider,
	stats *monitoring.StatUpdater,
	hub *websocket.Hub,
	allowedOrigins []string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userSvc, tokenSvc)
	profileHandler := handlers.NewProfileHandler(profileSvc)
	jobHandler := handlers.NewJobHandler(jobSvc)
	eventHandler := handlers.NewEventHandler(eventSvc)
	systemHandler := handlers.NewSystemHandler(stats)
	wsHandler := handlers.NewWebSocketHandler(hub)

	// Public: login only.
	r.Post("/auth/login", authHandler.Login)

	// Everything else is gated.
	r.Group(func(r chi.Router) {
		r.Use(tokenSvc.Middleware())

		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/me", authHandler.Me)

		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", profileHandler.GetAll)
			r.Get("/{id}", profileHandler.Get)
			r.Put("/{id}", profileHandler.Update)
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", jobHandler.GetAll)
			r.Get("/{id}", jobHandler.Get)
		})

		r.Get("/events", eventHandler.GetRecent)
		r.Get("/system/stats", systemHandler.GetStats)
		r.Get("/ws", wsHandler.Serve)
	})

	return r
}
