package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(s *Server) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", s.SearchHandler.HandleRoot).Methods(http.MethodGet)
	r.HandleFunc("/health", s.SearchHandler.HandleHealth).Methods(http.MethodGet)
	r.HandleFunc("/search", s.SearchHandler.HandleSearch).Methods(http.MethodPost)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}
