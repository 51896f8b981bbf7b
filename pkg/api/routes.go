package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers all API routes with the given router
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HandleHealth).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	router.HandleFunc("/entities", h.HandleListEntities).Methods("GET")
	router.HandleFunc("/entities/{entity}/fields", h.HandleFields).Methods("GET")
	router.HandleFunc("/entities/{entity}/search", h.HandleSearch).Methods("GET")
	router.HandleFunc("/entities/{entity}/records/{key}", h.HandleGetRecord).Methods("GET")
}
