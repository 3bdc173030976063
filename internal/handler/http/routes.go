package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// routes behind JWT authentication
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/auth/me", h.me)

		r.Route("/api/incidents", func(r chi.Router) {
			r.Get("/", h.listIncidents)
			r.Post("/", h.createIncident)
			r.Get("/metrics", h.incidentMetrics)
			r.Put("/{id}", h.updateIncident)
			r.Delete("/{id}", h.deleteIncident)
		})

		r.Route("/api/datasets", func(r chi.Router) {
			r.Get("/", h.listDatasets)
			r.Post("/", h.createDataset)
			r.Get("/count", h.countDatasets)
			r.Put("/{id}", h.updateDataset)
			r.Delete("/{id}", h.deleteDataset)
		})

		r.Route("/api/tickets", func(r chi.Router) {
			r.Get("/", h.listTickets)
			r.Post("/", h.createTicket)
			r.Get("/metrics", h.ticketMetrics)
		})

		r.Route("/api/assistant", func(r chi.Router) {
			r.Post("/chat", h.assistantChat)
			r.Post("/clear", h.assistantClear)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
