package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"biobank-backend/internal/models"
	"biobank-backend/internal/services"
)

// writeError maps domain errors to HTTP statuses. The error text carries the
// ids and states the caller needs to decide between retrying, choosing a
// different zone, or escalating.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrInvalidCapacity):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrDuplicateBarcode),
		errors.Is(err, models.ErrZoneExists),
		errors.Is(err, models.ErrEmailExists),
		errors.Is(err, models.ErrIllegalTransition),
		errors.Is(err, models.ErrCapacityExceeded):
		status = http.StatusConflict
	case errors.Is(err, models.ErrTemperatureClassMismatch):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrArchiveNotConfigured):
		status = http.StatusServiceUnavailable
	case errors.Is(err, models.ErrUnderflow):
		// integrity violation, nothing the caller can fix
		status = http.StatusInternalServerError
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
