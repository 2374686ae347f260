package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"pg-connect/internal/config"
	authdomain "pg-connect/internal/domain/auth"
	"pg-connect/internal/metrics"
	"pg-connect/internal/transport/httpserver/handler"
	authmw "pg-connect/internal/transport/httpserver/middleware"
	"pg-connect/pkg/logger"
)

// NewRouter wires the JSON API. m may be nil when metrics are disabled.
func NewRouter(cfg config.Config, handlers *handler.Handlers, sessions authmw.SessionResolver, m *metrics.Metrics, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.AllowedOrigins))
	if m != nil {
		r.Use(m.Middleware)
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)
		r.Post("/auth/login", handlers.Login)

		auth := authmw.NewSessionAuth(sessions, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Post("/auth/logout", handlers.Logout)
			r.Get("/auth/me", handlers.Me)
			r.Get("/notifications", handlers.Notifications)
			r.Put("/session/view", handlers.SelectView)
			r.Get("/view", handlers.RenderView)

			r.Get("/fees", handlers.ListFees)
			r.Patch("/fees/{id}", handlers.UpdateFeeStatus)
			r.Get("/tickets", handlers.ListTickets)
			r.Post("/tickets", handlers.CreateTicket)
			r.Get("/rooms/{id}/messages", handlers.ListRoomMessages)
			r.Post("/rooms/{id}/messages", handlers.SendRoomMessage)

			r.Group(func(r chi.Router) {
				r.Use(authmw.RequireRole(authdomain.RoleAdmin))

				r.Get("/dashboard", handlers.AdminDashboard)
				r.Get("/rooms", handlers.ListRooms)
				r.Get("/rooms/available", handlers.ListAvailableRooms)
				r.Get("/residents", handlers.ListResidents)
				r.Post("/residents", handlers.AddResident)
				r.Get("/residents/{id}", handlers.GetResident)
				r.Post("/residents/{id}/fees/pay", handlers.PayResidentFees)
				r.Post("/fees", handlers.CreateFee)
				r.Patch("/tickets/{id}", handlers.UpdateTicketStatus)
				r.Get("/conversations", handlers.ListConversations)
				r.Get("/insight", handlers.GetInsight)
				r.Post("/insight/refresh", handlers.RefreshInsight)
				r.Post("/blueprints", handlers.GenerateBlueprint)
			})

			r.Group(func(r chi.Router) {
				r.Use(authmw.RequireRole(authdomain.RoleResident))

				r.Get("/home", handlers.ResidentHome)
				r.Get("/messages", handlers.ListOwnMessages)
				r.Post("/messages", handlers.SendOwnMessage)
			})
		})
	})

	return r
}
