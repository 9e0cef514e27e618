package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"cafenine/insights-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Insights service.InsightsInterface
}

func NewHandler(svc service.InsightsInterface) *Handler {
	return &Handler{Insights: svc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "insights-svc"})
	}).Methods("GET")
	r.HandleFunc("/api/insights/popular", h.getPopular).Methods("GET")
}

func (h *Handler) getPopular(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	period := q.Get("period")
	if period == "" {
		period = service.PeriodAll
	}
	limit := service.DefaultLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a number"})
			return
		}
		limit = n
	}

	data, err := h.Insights.Popular(r.Context(), q.Get("branch"), period, limit)
	switch {
	case errors.Is(err, service.ErrInvalidPeriod), errors.Is(err, service.ErrInvalidLimit):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case err != nil:
		log.Printf("[insights-svc] popular items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "rankings unavailable"})
	default:
		writeJSON(w, http.StatusOK, data)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
