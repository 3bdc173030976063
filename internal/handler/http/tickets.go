package http

import (
	"encoding/json"
	"net/http"

	"intelplatform/internal/logger"
	"intelplatform/internal/utils"
	"intelplatform/models"
)

func (h *Handler) listTickets(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	priority := r.URL.Query().Get("priority")

	tickets, err := h.services.TicketService.List(r.Context(), priority)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listTickets").Msg("error listing tickets")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	if tickets == nil {
		tickets = []models.ITTicket{}
	}
	utils.WriteJSON(w, tickets, http.StatusOK)
}

func (h *Handler) createTicket(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var ticket models.ITTicket
	if err := json.NewDecoder(r.Body).Decode(&ticket); err != nil {
		log.Err(err).Str("func", "*Handler.createTicket").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.TicketService.Create(r.Context(), ticket)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createTicket").Msg("error creating ticket")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) ticketMetrics(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	metrics, err := h.services.TicketService.Metrics(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.ticketMetrics").Msg("error computing ticket metrics")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, metrics, http.StatusOK)
}
