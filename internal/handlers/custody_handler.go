package handlers

import (
	"fmt"
	"net/http"

	"biobank-backend/internal/services"

	"github.com/gorilla/mux"
)

type CustodyHandler struct {
	Samples *services.SampleService
	Reports *services.ReportService
	Export  *services.ExportService
}

func NewCustodyHandler(samples *services.SampleService, reports *services.ReportService, export *services.ExportService) *CustodyHandler {
	return &CustodyHandler{Samples: samples, Reports: reports, Export: export}
}

func (h *CustodyHandler) History(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	events, err := h.Samples.History(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *CustodyHandler) CustodyReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	pdfBytes, err := h.Reports.CustodyReportPDF(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=custody-report-%s.pdf", id))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}

func (h *CustodyHandler) Archive(w http.ResponseWriter, r *http.Request) {
	key, count, err := h.Export.Archive(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"object_key":  key,
		"event_count": count,
	})
}
