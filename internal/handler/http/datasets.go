package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"intelplatform/internal/logger"
	"intelplatform/internal/service"
	"intelplatform/internal/utils"
	"intelplatform/models"
)

func (h *Handler) listDatasets(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	// ?limit= caps the listing; the service applies the default cap when
	// the parameter is absent or not a positive integer
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	datasets, err := h.services.DatasetService.List(r.Context(), limit)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listDatasets").Msg("error listing datasets")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	if datasets == nil {
		datasets = []models.Dataset{}
	}
	utils.WriteJSON(w, datasets, http.StatusOK)
}

func (h *Handler) createDataset(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var dataset models.Dataset
	if err := json.NewDecoder(r.Body).Decode(&dataset); err != nil {
		log.Err(err).Str("func", "*Handler.createDataset").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.DatasetService.Create(r.Context(), dataset)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createDataset").Msg("error creating dataset")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateDataset(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := idParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var update models.DatasetUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Str("func", "*Handler.updateDataset").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.DatasetService.Update(r.Context(), id, update); err != nil {
		log.Err(err).Str("func", "*Handler.updateDataset").Int64("id", id).Msg("error updating dataset")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

// deleteDataset follows the same two-step confirmation protocol as incident
// deletion.
func (h *Handler) deleteDataset(w http.ResponseWriter, r *http.Request) {
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

	err = h.services.DatasetService.Delete(r.Context(), session, id)
	switch {
	case errors.Is(err, service.ErrConfirmDelete):
		utils.WriteJSON(w, map[string]string{"status": "confirmation required"}, http.StatusAccepted)
	case err != nil:
		log.Err(err).Str("func", "*Handler.deleteDataset").Int64("id", id).Msg("error deleting dataset")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
	default:
		utils.WriteJSON(w, map[string]string{"status": "deleted"}, http.StatusOK)
	}
}

func (h *Handler) countDatasets(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	count, err := h.services.DatasetService.Count(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.countDatasets").Msg("error counting datasets")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, map[string]int{"count": count}, http.StatusOK)
}
