package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/lcalzada-xor/aptel/internal/core/domain"
	"github.com/lcalzada-xor/aptel/internal/core/ports"
	"github.com/lcalzada-xor/aptel/internal/telemetry"
)

// SearchHandler serves the filtered time-windowed metrics search.
type SearchHandler struct {
	Repo ports.MetricsRepository

	// now is swappable for tests.
	now func() time.Time
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(repo ports.MetricsRepository) *SearchHandler {
	return &SearchHandler{
		Repo: repo,
		now:  time.Now,
	}
}

type searchResponse struct {
	Count int                `json:"count"`
	Data  []domain.MetricRow `json:"data"`
}

// HandleSearch runs a search: a time window (defaulting to the last 24 hours)
// plus optional equality filters. Any failure while building or executing the
// query surfaces as a single generic server error; the cause is only logged
// server-side.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var filter domain.SearchFilter
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		telemetry.SearchRequests.WithLabelValues("bad_request").Inc()
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	filter.ApplyDefaults(h.now().UTC())
	if err := filter.Validate(); err != nil {
		telemetry.SearchRequests.WithLabelValues("bad_request").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows, err := h.Repo.Search(r.Context(), filter)
	if err != nil {
		log.Printf("Search query failed: %v", err)
		telemetry.SearchRequests.WithLabelValues("error").Inc()
		http.Error(w, "Error executing query", http.StatusInternalServerError)
		return
	}

	telemetry.SearchRequests.WithLabelValues("ok").Inc()
	if rows == nil {
		rows = []domain.MetricRow{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(searchResponse{Count: len(rows), Data: rows})
}

// HandleRoot describes the service.
func (h *SearchHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"message": "WiFi Metrics Search API",
		"endpoints": map[string]string{
			"/search": "POST - Search metrics with time range and filters",
		},
	})
}

// HandleHealth reports liveness.
func (h *SearchHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}
