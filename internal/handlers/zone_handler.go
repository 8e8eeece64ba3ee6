package handlers

import (
	"encoding/json"
	"net/http"

	"biobank-backend/internal/models"
	"biobank-backend/internal/services"

	"github.com/gorilla/mux"
)

type ZoneHandler struct {
	Service *services.ZoneService
}

func NewZoneHandler(s *services.ZoneService) *ZoneHandler {
	return &ZoneHandler{Service: s}
}

func (h *ZoneHandler) ProvisionZone(w http.ResponseWriter, r *http.Request) {
	var req models.CreateZoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	zone, err := h.Service.ProvisionZone(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, zone)
}

func (h *ZoneHandler) CapacityOverview(w http.ResponseWriter, r *http.Request) {
	zones, err := h.Service.CapacityOverview(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, zones)
}

func (h *ZoneHandler) AmendCapacity(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.AmendCapacityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	zone, err := h.Service.AmendCapacity(r.Context(), id, req.Capacity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, zone)
}
