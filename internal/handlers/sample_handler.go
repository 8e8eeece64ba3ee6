package handlers

import (
	"encoding/json"
	"net/http"

	"biobank-backend/internal/middleware"
	"biobank-backend/internal/models"
	"biobank-backend/internal/services"

	"github.com/gorilla/mux"
)

type SampleHandler struct {
	Samples   *services.SampleService
	Lifecycle *services.LifecycleService
}

func NewSampleHandler(samples *services.SampleService, lifecycle *services.LifecycleService) *SampleHandler {
	return &SampleHandler{Samples: samples, Lifecycle: lifecycle}
}

func (h *SampleHandler) CreateSample(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sample, err := h.Samples.CreateSample(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sample)
}

func (h *SampleHandler) GetSample(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	sample, err := h.Samples.GetSample(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sample)
}

func (h *SampleHandler) AdvanceState(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.AdvanceStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Actor not found in context", http.StatusUnauthorized)
		return
	}

	sample, err := h.Lifecycle.AdvanceState(r.Context(), id, req.TargetState, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sample)
}

func (h *SampleHandler) AssignToZone(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.AssignZoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Actor not found in context", http.StatusUnauthorized)
		return
	}

	sample, err := h.Lifecycle.AssignToZone(r.Context(), id, req.ZoneID, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sample)
}

func (h *SampleHandler) MoveToZone(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.AssignZoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Actor not found in context", http.StatusUnauthorized)
		return
	}

	sample, err := h.Lifecycle.MoveToZone(r.Context(), id, req.ZoneID, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sample)
}

func (h *SampleHandler) RemoveFromZone(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Actor not found in context", http.StatusUnauthorized)
		return
	}

	sample, err := h.Lifecycle.RemoveFromZone(r.Context(), id, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sample)
}

func (h *SampleHandler) ScanBarcode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["barcode"]

	result, err := h.Samples.ScanBarcode(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
