package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jarwatch/jarwatch/internal/models"
	"github.com/jarwatch/jarwatch/internal/service"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Healthz reports liveness and the timestamp of the last completed cycle
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	_, lastUpdated := h.svc.LastReports()
	writeJSON(w, map[string]string{
		"status":      "ok",
		"lastUpdated": lastUpdated,
	})
}

// Report returns the latest cycle's jar reports
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	reports, lastUpdated := h.svc.LastReports()
	if reports == nil {
		reports = []models.JarReport{}
	}
	writeJSON(w, map[string]interface{}{
		"jars":        reports,
		"lastUpdated": lastUpdated,
	})
}

// Chart serves the latest progress chart image
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	writePNG(w, h.svc.LastChart())
}

// HistoryChart serves the latest history line chart image
func (h *Handler) HistoryChart(w http.ResponseWriter, r *http.Request) {
	writePNG(w, h.svc.LastHistoryChart())
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writePNG(w http.ResponseWriter, img []byte) {
	if len(img) == 0 {
		http.Error(w, "no chart rendered yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(img)
}
