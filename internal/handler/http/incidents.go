package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"intelplatform/internal/logger"
	"intelplatform/internal/service"
	"intelplatform/internal/utils"
	"intelplatform/models"
)

func (h *Handler) listIncidents(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	incidents, err := h.services.IncidentService.List(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.listIncidents").Msg("error listing incidents")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	if incidents == nil {
		incidents = []models.SecurityIncident{}
	}
	utils.WriteJSON(w, incidents, http.StatusOK)
}

func (h *Handler) createIncident(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var incident models.SecurityIncident
	if err := json.NewDecoder(r.Body).Decode(&incident); err != nil {
		log.Err(err).Str("func", "*Handler.createIncident").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.IncidentService.Create(r.Context(), incident)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createIncident").Msg("error creating incident")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateIncident(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := idParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var update models.IncidentUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Str("func", "*Handler.updateIncident").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.IncidentService.Update(r.Context(), id, update); err != nil {
		log.Err(err).Str("func", "*Handler.updateIncident").Int64("id", id).Msg("error updating incident")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

// deleteIncident executes the two-step delete protocol: the first call for a
// given id answers 202 Accepted (armed, repeat to confirm), the immediate
// repeat answers 200 once the row is gone.
func (h *Handler) deleteIncident(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := idParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, ok := sessionID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	err = h.services.IncidentService.Delete(r.Context(), session, id)
	switch {
	case errors.Is(err, service.ErrConfirmDelete):
		utils.WriteJSON(w, map[string]string{"status": "confirmation required"}, http.StatusAccepted)
	case err != nil:
		log.Err(err).Str("func", "*Handler.deleteIncident").Int64("id", id).Msg("error deleting incident")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
	default:
		utils.WriteJSON(w, map[string]string{"status": "deleted"}, http.StatusOK)
	}
}

func (h *Handler) incidentMetrics(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	metrics, err := h.services.IncidentService.Metrics(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.incidentMetrics").Msg("error computing incident metrics")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, metrics, http.StatusOK)
}
